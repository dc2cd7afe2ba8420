// Package render defines the image generation provider interface and common
// types for driving remote node-graph execution backends.
//
// A backend takes a template graph plus runtime parameters (reference
// images, optional keypoint asset, prompts), adapts the graph through the
// workflow package, submits it, polls to completion, and returns a
// structured Outcome. Backends register with the provider manager so a
// caller can run a primary engine with a serverless fallback:
//
//	mgr := render.NewManager(render.WithSelector(
//	    &provider.PrioritySelector[render.Provider]{Priority: []string{"comfy", "runpod"}},
//	))
//	mgr.Register(comfy.ProviderName, comfy.Factory())
//	mgr.Register(runpod.ProviderName, runpod.Factory())
package render
