package contents

type ContentsQuery struct {
	VolumeNum *int   `query:"volumeNum" json:"volumeNum" validate:"required,min=1"`
	Path      string `query:"path" json:"path,omitempty" mod:"trim" validate:"omitempty,contentpath"`
}

// ChildrenQuery describes a parent node by its structural coordinates rather
// than its content id.
type ChildrenQuery struct {
	VolumeNum *int   `query:"volumeNum" json:"volumeNum" validate:"required,min=1"`
	SectID    string `query:"sectId" json:"sectId" mod:"trim" validate:"required"`
	Path      string `query:"path" json:"path,omitempty" mod:"trim" validate:"omitempty,contentpath"`
	Level     string `query:"level" json:"level,omitempty" mod:"trim,ucase" validate:"omitempty,len=1"`
}

type ContentQuery struct {
	Mode string `query:"mode" json:"mode,omitempty" default:"content" validate:"oneof=content children"`
}

type RenderQuery struct {
	Notes *bool `query:"notes" json:"notes,omitempty" default:"true"`
}

type VolumesResponse struct {
	Volumes []int `json:"volumes"`
}

type RenderResponse struct {
	ContentID int    `json:"contentId"`
	Chinese   string `json:"chinese"`
	Korean    string `json:"korean"`
	English   string `json:"english"`
}
