package social_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/social"
	"github.com/trezcool/shule/tests"
)

func TestService_Like(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	admin := testutil.Identity(t, session.Admin)
	teacher := testutil.Identity(t, session.Teacher)

	// the admin already likes post 3
	p, err := app.Social.Like(3, admin)
	require.NoError(t, err)
	assert.Equal(t, 22, p.Likes)
	assert.False(t, p.IsLikedBy(admin.ID))

	p, err = app.Social.Like(3, teacher)
	require.NoError(t, err)
	assert.Equal(t, 23, p.Likes)
	assert.True(t, p.IsLikedBy(teacher.ID))

	p, err = app.Social.Like(3, admin)
	require.NoError(t, err)
	assert.Equal(t, 24, p.Likes)
	assert.Equal(t, []int{2, 1}, p.LikedBy)

	_, err = app.Social.Like(42, admin)
	assert.True(t, core.IsNotFound(err))
}

func TestService_PublishAndComment(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	teacher := testutil.Identity(t, session.Teacher)

	p, err := app.Social.Publish(teacher, social.NewPost{Content: "Field trip on Friday"})
	require.NoError(t, err)
	assert.Equal(t, 4, p.ID)
	assert.Equal(t, "Teacher", p.Role)

	timeline, err := app.Social.Timeline()
	require.NoError(t, err)
	require.Len(t, timeline, 4)
	assert.Equal(t, p.ID, timeline[0].ID, "newest first")

	p, err = app.Social.Comment(1, teacher, social.NewComment{Content: "Well done!"})
	require.NoError(t, err)
	require.Len(t, p.Comments, 2)
	assert.Equal(t, 2, p.Comments[1].ID)
	assert.Equal(t, "Teacher User", p.Comments[1].Author)
}

func TestNewPost_Validate(t *testing.T) {
	validate, _ := core.NewValidator()
	tests := []struct {
		name    string
		post    social.NewPost
		wantErr bool
	}{
		{"content", social.NewPost{Content: "hello"}, false},
		{"image only", social.NewPost{Image: "https://example.com/a.png"}, false},
		{"blank", social.NewPost{Content: "   "}, true},
		{"bad image", social.NewPost{Content: "hi", Image: "not a url"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}
