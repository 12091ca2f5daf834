package wizard

import (
	"context"
	"testing"
	"time"

	"portfolio_backend/internal/client"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services/dto"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) CreatePortfolio(ctx context.Context, payload interface{}, files *client.Files) (*models.Portfolio, error) {
	args := m.Called(ctx, payload, files)
	p, _ := args.Get(0).(*models.Portfolio)
	return p, args.Error(1)
}

func png(name string) *client.File {
	return &client.File{Name: name, ContentType: "image/png", Data: []byte("\x89PNG")}
}

func TestNewWizard_InitialState(t *testing.T) {
	w := New(nil)

	d := w.Data()
	assert.Len(t, d.Skills, 1)
	assert.Len(t, d.Services, 3)
	assert.Len(t, d.Projects, 3)
	assert.Len(t, d.Testimonials, 1)
	assert.Equal(t, StepHero, w.Step())
	assert.ErrorIs(t, w.Enter(), ErrNoTemplate)
}

func TestSelectTemplate(t *testing.T) {
	w := New(nil)

	assert.ErrorIs(t, w.SelectTemplate("retro"), ErrUnknownTemplate)
	require.NoError(t, w.SelectTemplate("classic"))
	assert.NoError(t, w.Enter())
	assert.Equal(t, "classic", w.TemplateID())
}

func TestNavigation_Bounded(t *testing.T) {
	w := New(nil)

	assert.Equal(t, StepHero, w.Previous())
	for range Steps() {
		w.Next()
	}
	assert.Equal(t, StepContact, w.Step())
	assert.Equal(t, StepContact, w.Next())
	assert.Equal(t, StepBlog, w.Previous())
	assert.Equal(t, "blog", w.Step().String())
}

func TestSetField(t *testing.T) {
	w := New(nil)

	require.NoError(t, w.SetField("hero", "name", "Jane"))
	require.NoError(t, w.SetField("about", "bio", "Hi"))
	require.NoError(t, w.SetNestedField("about", "socials", "github", "gh/jane"))
	require.NoError(t, w.SetField("contact", "email", "j@x.io"))

	assert.ErrorIs(t, w.SetField("hero", "image", "x"), ErrUnknownField)
	assert.ErrorIs(t, w.SetField("nope", "name", "x"), ErrUnknownField)
	assert.ErrorIs(t, w.SetNestedField("about", "links", "github", "x"), ErrUnknownField)

	d := w.Data()
	assert.Equal(t, "Jane", d.Hero.Name)
	assert.Equal(t, "Hi", d.About.Bio)
	assert.Equal(t, "gh/jane", d.About.Socials.Github)
	assert.Equal(t, "j@x.io", d.Contact.Email)
}

func TestSkills_LastOneStays(t *testing.T) {
	w := New(nil)

	require.NoError(t, w.SetSkill(0, "Go"))
	require.NoError(t, w.RemoveSkill(0))
	assert.Equal(t, []string{"Go"}, w.Data().Skills)

	w.AddSkill()
	require.NoError(t, w.SetSkill(1, "React"))
	require.NoError(t, w.RemoveSkill(0))
	assert.Equal(t, []string{"React"}, w.Data().Skills)

	assert.ErrorIs(t, w.SetSkill(5, "x"), ErrIndexOutOfRange)
}

func TestTestimonials_Bounds(t *testing.T) {
	w := New(nil)

	for i := 0; i < 5; i++ {
		w.AddTestimonial()
	}
	assert.Len(t, w.Data().Testimonials, MaxTestimonials)

	for i := 0; i < 5; i++ {
		require.NoError(t, w.RemoveTestimonial(0))
	}
	assert.Len(t, w.Data().Testimonials, 1)
	assert.ErrorIs(t, w.SetTestimonialField(0, "rating", "5"), ErrUnknownField)
}

func TestSetImage_Validation(t *testing.T) {
	w := New(nil)

	err := w.SetImage(ProfileImage, &client.File{Name: "a.pdf", ContentType: "application/pdf"})
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	err = w.SetImage(ProfileImage, &client.File{Name: "a.png", ContentType: "image/png", Data: make([]byte, MaxImageSize+1)})
	assert.ErrorIs(t, err, ErrImageTooLarge)

	assert.ErrorIs(t, w.SetImage(ProjectImage(3), png("p.png")), ErrIndexOutOfRange)

	require.NoError(t, w.SetImage(ProjectImage(1), png("p.png")))
	assert.Equal(t, ImagePending, w.Image(ProjectImage(1)).Kind())
	require.NoError(t, w.SetImage(ProjectImage(1), nil))
	assert.Equal(t, ImageNone, w.Image(ProjectImage(1)).Kind())
}

func TestBuildSubmission_FiltersBlanksAndReindexesImages(t *testing.T) {
	w := New(nil)

	require.NoError(t, w.SetField("hero", "name", "Jane"))
	require.NoError(t, w.SetSkill(0, "  "))
	w.AddSkill()
	require.NoError(t, w.SetSkill(1, "Go"))
	require.NoError(t, w.SetServiceField(1, "title", "Consulting"))
	// проект 0 пустой, проекты 1 и 2 заполнены
	require.NoError(t, w.SetProjectField(1, "title", "Shop"))
	require.NoError(t, w.SetProjectTechnologies(1, []string{"Go", "Vue"}))
	require.NoError(t, w.SetProjectField(2, "title", "Blog"))
	require.NoError(t, w.SetImage(ProjectImage(0), png("orphan.png")))
	require.NoError(t, w.SetImage(ProjectImage(2), png("blog.png")))
	require.NoError(t, w.SetImage(ProfileImage, png("me.png")))

	before := w.Data()
	sub := w.BuildSubmission()

	assert.Equal(t, []string{"Go"}, *sub.Payload.Skills)
	assert.Equal(t, []models.Service{{Title: "Consulting"}}, *sub.Payload.Services)
	assert.Empty(t, *sub.Payload.Testimonials)
	assert.Equal(t, "modern", *sub.Payload.Template)

	want := []dto.ProjectPayload{
		{Title: "Shop", Technologies: []string{"Go", "Vue"}},
		{Title: "Blog", Technologies: []string{}},
	}
	if diff := cmp.Diff(want, *sub.Payload.Projects); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}

	// blog.png принадлежит проекту с индексом 1 после фильтрации
	assert.Equal(t, "me.png", sub.Files.Profile.Name)
	require.Contains(t, sub.Files.Projects, 1)
	assert.Equal(t, "blog.png", sub.Files.Projects[1].Name)
	assert.NotContains(t, sub.Files.Projects, 0)
	assert.Equal(t, []string{"profileImage", "portfolioImage1"}, sub.FileFields())

	if diff := cmp.Diff(before, w.Data()); diff != "" {
		t.Errorf("BuildSubmission mutated state (-before +after):\n%s", diff)
	}
}

func TestSubmit_Success(t *testing.T) {
	creator := &mockCreator{}
	w := New(creator)
	require.NoError(t, w.SelectTemplate("classic"))
	require.NoError(t, w.SetProjectField(0, "title", "Shop"))
	require.NoError(t, w.SetImage(ProfileImage, png("me.png")))
	require.NoError(t, w.SetImage(ProjectImage(0), png("shop.png")))

	profileID, projectID := "p1-1-1", "p1-1-2"
	created := &models.Portfolio{
		ID:             "p1",
		ProfileImageID: &profileID,
		Projects:       []models.Project{{Title: "Shop", ImageID: &projectID}},
	}
	creator.On("CreatePortfolio", mock.Anything, mock.MatchedBy(func(p dto.PortfolioPayload) bool {
		return *p.Template == "classic"
	}), mock.Anything).Return(created, nil).Once()

	outcome, err := w.Submit(context.Background())
	require.NoError(t, err)
	creator.AssertExpectations(t)

	assert.Equal(t, Outcome{
		Route:         "/success",
		RedirectTo:    "/professionals",
		RedirectAfter: 3 * time.Second,
		Portfolio:     created,
	}, outcome)
	assert.False(t, w.Busy())
	assert.Empty(t, w.LastError())

	id, ok := w.Image(ProfileImage).ID()
	assert.True(t, ok)
	assert.Equal(t, profileID, id)
	id, ok = w.Image(ProjectImage(0)).ID()
	assert.True(t, ok)
	assert.Equal(t, projectID, id)
}

func TestSubmit_FailureKeepsState(t *testing.T) {
	creator := &mockCreator{}
	w := New(creator)
	require.NoError(t, w.SetField("hero", "name", "Jane"))

	creator.On("CreatePortfolio", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(&client.APIError{Status: 415, Message: "Only image files are allowed!"}, "create portfolio")).Once()
	creator.On("CreatePortfolio", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(client.ErrNetwork, "timeout")).Once()

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Only image files are allowed!", w.LastError())
	assert.False(t, w.Busy())
	assert.Equal(t, "Jane", w.Data().Hero.Name)

	_, err = w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, SubmitFallbackMessage, w.LastError())
}
