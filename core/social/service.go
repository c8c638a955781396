package social

import (
	"time"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = core.NewNotFoundError("post")
)

type (
	Repository interface {
		CreatePost(p Post) (Post, error)
		GetPostByID(id int) (Post, error)
		// QueryPosts returns every post in publishing order.
		QueryPosts() ([]Post, error)
		// UpdatePost applies update to the post while holding the collection lock.
		UpdatePost(id int, update func(p *Post)) (Post, error)
		DeletePost(id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Publish posts on the timeline as id. Callers check the social-post capability.
func (svc *Service) Publish(id session.Identity, np NewPost) (Post, error) {
	return svc.repo.CreatePost(Post{
		Author:    id.Name,
		Role:      id.Role.Title(),
		Content:   np.Content,
		Timestamp: nowFunc().UTC(),
		LikedBy:   []int{},
		Comments:  []Comment{},
		Image:     np.Image,
	})
}

// Timeline lists posts newest first.
func (svc *Service) Timeline() ([]Post, error) {
	posts, err := svc.repo.QueryPosts()
	if err != nil {
		return nil, err
	}
	timeline := make([]Post, len(posts))
	for i, p := range posts {
		timeline[len(posts)-1-i] = p
	}
	return timeline, nil
}

// Like toggles id's like on the post.
func (svc *Service) Like(postID int, id session.Identity) (Post, error) {
	return svc.repo.UpdatePost(postID, func(p *Post) {
		for i, uid := range p.LikedBy {
			if uid == id.ID {
				p.LikedBy = append(p.LikedBy[:i:i], p.LikedBy[i+1:]...)
				if p.Likes > 0 {
					p.Likes--
				}
				return
			}
		}
		p.LikedBy = append(p.LikedBy, id.ID)
		p.Likes++
	})
}

// Comment appends a comment by id to the post.
func (svc *Service) Comment(postID int, id session.Identity, nc NewComment) (Post, error) {
	return svc.repo.UpdatePost(postID, func(p *Post) {
		p.Comments = append(p.Comments, Comment{
			ID:        len(p.Comments) + 1,
			Author:    id.Name,
			Role:      id.Role.Title(),
			Content:   nc.Content,
			Timestamp: nowFunc().UTC(),
		})
	})
}

func (svc *Service) Remove(id int) error {
	return svc.repo.DeletePost(id)
}
