// Package provider manages the set of generation backends: factory
// registration, lazy initialization, and runtime selection between a
// primary backend and its fallbacks.
//
//	mgr := provider.NewManager(&provider.PrioritySelector[render.Provider]{
//	    Priority: []string{"comfy", "runpod"},
//	})
//	mgr.Register("comfy", comfy.Factory())
//	mgr.Initialize("comfy", nil)
//	backend, _ := mgr.Get(ctx)
package provider
