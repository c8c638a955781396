package social

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type Comment struct {
	ID        int       `json:"id"` // sequential within its post
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Post struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int       `json:"likes"`
	LikedBy   []int     `json:"liked_by"` // identity IDs
	Comments  []Comment `json:"comments"`
	Image     string    `json:"image,omitempty"`
}

// IsLikedBy reports whether the identity with id has liked the post.
func (p Post) IsLikedBy(id int) bool {
	for _, uid := range p.LikedBy {
		if uid == id {
			return true
		}
	}
	return false
}

type NewPost struct {
	Content string `json:"content" validate:"required_without=Image"`
	Image   string `json:"image" validate:"omitempty,url|datauri"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.Content = core.CleanString(np.Content)
	np.Image = core.CleanString(np.Image)
	return validate.Struct(np)
}

type NewComment struct {
	Content string `json:"content" validate:"required"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Content = core.CleanString(nc.Content)
	return validate.Struct(nc)
}
