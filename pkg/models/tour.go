package models

// TourAsset is a Storyblok asset field.
type TourAsset struct {
	ID            int         `json:"id"`
	Alt           string      `json:"alt"`
	Name          string      `json:"name"`
	Focus         string      `json:"focus"`
	Title         string      `json:"title"`
	Source        string      `json:"source"`
	Filename      string      `json:"filename"`
	Copyright     string      `json:"copyright"`
	FieldType     string      `json:"fieldtype"`
	IsExternalURL bool        `json:"is_external_url"`
	MetaData      interface{} `json:"meta_data,omitempty"`
}

// TourContent is the "tour" component schema.
type TourContent struct {
	UID          string    `json:"_uid"`
	Body         Document  `json:"body"`
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	Location     string    `json:"location"`
	Component    string    `json:"component"`
	MainImage    TourAsset `json:"main_image"`
	Introduction string    `json:"introduction"`
}

// TourStory is a story envelope as returned by the delivery API.
type TourStory struct {
	ID               int           `json:"id"`
	UUID             string        `json:"uuid"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	FullSlug         string        `json:"full_slug"`
	Content          TourContent   `json:"content"`
	CreatedAt        string        `json:"created_at"`
	PublishedAt      string        `json:"published_at"`
	UpdatedAt        string        `json:"updated_at"`
	FirstPublishedAt string        `json:"first_published_at"`
	SortByDate       *string       `json:"sort_by_date"`
	Position         int           `json:"position"`
	TagList          []string      `json:"tag_list"`
	IsStartpage      bool          `json:"is_startpage"`
	ParentID         int           `json:"parent_id"`
	MetaData         interface{}   `json:"meta_data"`
	GroupID          string        `json:"group_id"`
	ReleaseID        *string       `json:"release_id"`
	Lang             string        `json:"lang"`
	Path             *string       `json:"path"`
	Alternates       []interface{} `json:"alternates"`
	DefaultFullSlug  *string       `json:"default_full_slug"`
	TranslatedSlugs  interface{}   `json:"translated_slugs"`
}
