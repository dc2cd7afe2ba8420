// Package workflow models node graphs for remote image-generation engines
// and adapts them at runtime: wiring uploaded reference images into the
// identity-conditioning node, injecting an optional pose/keypoint image,
// and rewriting prompt text.
//
// A Graph is a map of node ids to typed nodes whose inputs are either
// literal values or links to other nodes' outputs. Templates are authored
// externally and treated as opaque: this package rewires them, it does not
// interpret their visual semantics.
//
// Node roles (identity conditioning, loaders, prompt encoders, save nodes)
// are resolved through a three-tier strategy: explicit hints embedded in the
// template's top-level "_meta" object, then conventional node ids from a
// Roles config, then structural/content heuristics. Hints are advisory;
// every resolver works when they are absent or stale.
package workflow
