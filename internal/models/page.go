// internal/models/page.go
package models

// Page is a page or post a cart link can redirect to.
type Page struct {
	BaseModel
	Title  string        `json:"title" gorm:"size:255;not null"`
	Slug   string        `json:"slug" gorm:"size:255;index"`
	URL    string        `json:"url" gorm:"size:1024;not null"`
	Type   string        `json:"type" gorm:"type:varchar(20);default:'page'"`
	Status ProductStatus `json:"status" gorm:"type:varchar(20);default:'publish'"`
}

type PageSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

func (p *Page) Summary() PageSummary {
	return PageSummary{ID: p.ID, Title: p.Title, URL: p.URL, Type: p.Type}
}
