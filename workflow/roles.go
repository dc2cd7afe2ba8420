package workflow

// Roles is the explicit configuration for node-role resolution: the class
// types accepted for each role, the conventional node ids probed before
// heuristic scans, and the input field names the wiring stages rewrite.
// Templates authored to the house conventions work with DefaultRoles;
// anything else can override per-field.
type Roles struct {
	// IdentityClassTypes are the accepted identity-conditioning class types.
	IdentityClassTypes []string
	// IdentityCandidates are conventional identity node ids probed before
	// scanning the whole graph.
	IdentityCandidates []string
	// IdentityImageInput is the identity node's reference-image input field.
	IdentityImageInput string
	// IdentityPoseInput is the identity node's pose/keypoint input field.
	IdentityPoseInput string

	// LoaderClassType is the class type of image load nodes.
	LoaderClassType string
	// LoaderSlots are the conventional reference-loader ids, in the order
	// reference images are assigned to them.
	LoaderSlots []string
	// LoaderImageInput is the loader's filename input field.
	LoaderImageInput string

	// CropClassTypes are the auto-crop class types paired with loaders.
	CropClassTypes []string
	// CropImageInput is the crop node's image input field, followed back
	// to find the paired loader.
	CropImageInput string

	// BatchClassType is the class type of the binary image-batch node.
	BatchClassType string
	// BatchSlots are the conventional ids used when batch nodes are
	// created or reused for the 2- and 3-image topologies.
	BatchSlots [2]string
	// BatchFirstInput and BatchSecondInput are the batch node's two
	// image input fields.
	BatchFirstInput  string
	BatchSecondInput string

	// TextEncodeClassType is the class type of prompt text-encoding nodes.
	TextEncodeClassType string
	// TextInput is the text-encoding node's prompt input field.
	TextInput string
	// PositivePromptNodes and NegativePromptNodes are the conventional
	// prompt node ids used when the template carries no prompt hints.
	PositivePromptNodes []string
	NegativePromptNodes []string

	// KeypointCandidates are conventional pose-loader ids.
	KeypointCandidates []string
	// KeypointKeywords are substrings matched (case-insensitively) against
	// loader filename values when hunting for a pose loader.
	KeypointKeywords []string

	// SaveNodes and PreviewNodes are the conventional ids whose outputs
	// hold the final artifact and intermediate preview respectively.
	SaveNodes    []string
	PreviewNodes []string
}

// DefaultRoles returns the conventional role configuration used by the
// house template library.
func DefaultRoles() Roles {
	return Roles{
		IdentityClassTypes: []string{"ApplyInstantID", "ApplyInstantIDAdvanced", "InstantIDApply"},
		IdentityCandidates: []string{"60"},
		IdentityImageInput: "image",
		IdentityPoseInput:  "image_kps",

		LoaderClassType:  "LoadImage",
		LoaderSlots:      []string{"12", "13", "14", "15"},
		LoaderImageInput: "image",

		CropClassTypes: []string{"AutoCropFaces", "FaceCrop", "ImageCrop"},
		CropImageInput: "image",

		BatchClassType:   "ImageBatch",
		BatchSlots:       [2]string{"97", "98"},
		BatchFirstInput:  "image1",
		BatchSecondInput: "image2",

		TextEncodeClassType: "CLIPTextEncode",
		TextInput:           "text",
		PositivePromptNodes: []string{"6"},
		NegativePromptNodes: []string{"7"},

		KeypointCandidates: []string{"67"},
		KeypointKeywords:   []string{"pose", "keypoint", "kps"},

		SaveNodes:    []string{"9"},
		PreviewNodes: []string{"25"},
	}
}
