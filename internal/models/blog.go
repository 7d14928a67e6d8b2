package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the closed set of blog categories, in display order.
var Categories = []string{"Technology", "Health", "Lifestyle", "Education", "Business", "Entertainment"}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Blog is a single post in the blogs collection.
//
// Author holds a copy of the writer's username. It is expected to name an
// existing user but is never checked against the users collection.
type Blog struct {
	ID           primitive.ObjectID `json:"_id"                    bson:"_id,omitempty"`
	Title        string             `json:"title"                  bson:"title"`
	Content      string             `json:"content"                bson:"content"`
	Author       string             `json:"author"                 bson:"author"`
	Category     string             `json:"category"               bson:"category"`
	ExternalLink string             `json:"externalLink,omitempty" bson:"externalLink,omitempty"`
	Image        string             `json:"image,omitempty"        bson:"image,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"              bson:"createdAt"`
}

// BlogForm carries the text fields of POST /blogs/create.
type BlogForm struct {
	Title        string `json:"title"        validate:"required"`
	Content      string `json:"content"      validate:"required"`
	Author       string `json:"author"       validate:"required"`
	Category     string `json:"category"     validate:"required,blogcategory"`
	ExternalLink string `json:"externalLink"`
}

// BlogUpdate is the JSON body for PUT /update-blog/{id}.
// All four fields overwrite the stored values.
type BlogUpdate struct {
	Title        string `json:"title"        bson:"title"`
	Content      string `json:"content"      bson:"content"`
	Category     string `json:"category"     bson:"category"`
	ExternalLink string `json:"externalLink" bson:"externalLink"`
}
