package discussion

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/opportunity-hub/api/internal/scholarship"
)

type fakeChannelCreator struct {
	calls int
	err   error
}

func (f *fakeChannelCreator) CreateChannel(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("channel-%d", f.calls), nil
}

func (f *fakeChannelCreator) ChannelLink(channelID string) string {
	return "https://discord.com/channels/guild-1/" + channelID
}

type discussionFixture struct {
	service  DiscussionService
	channels *fakeChannelCreator
	program  *scholarship.Scholarship
}

func newDiscussionFixture(t *testing.T) *discussionFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&scholarship.Scholarship{}, &Discussion{}))

	channels := &fakeChannelCreator{}
	service := NewDiscussionService(
		NewDiscussionRepository(db),
		scholarship.NewScholarshipRepository(db),
		channels,
		zap.NewNop(),
	)

	program := &scholarship.Scholarship{
		Title:     gofakeit.Sentence(3),
		Status:    scholarship.StatusOpen,
		PartnerID: uuid.New(),
	}
	require.NoError(t, db.Create(program).Error)

	return &discussionFixture{service: service, channels: channels, program: program}
}

func TestGetOrCreateChannel(t *testing.T) {
	f := newDiscussionFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	result, err := f.service.GetOrCreateChannel(ctx, userID, f.program.ID)
	require.NoError(t, err)
	assert.Equal(t, "channel created", result.Status)
	assert.Equal(t, "https://discord.com/channels/guild-1/channel-1", result.ChannelLink)
	assert.Equal(t, 1, f.channels.calls)

	// second call reuses the stored channel, no new provisioning
	again, err := f.service.GetOrCreateChannel(ctx, uuid.New(), f.program.ID)
	require.NoError(t, err)
	assert.Equal(t, "channel already exists", again.Status)
	assert.Equal(t, result.ChannelLink, again.ChannelLink)
	assert.Equal(t, 1, f.channels.calls)
}

func TestGetOrCreateChannelUnknownScholarship(t *testing.T) {
	f := newDiscussionFixture(t)

	_, err := f.service.GetOrCreateChannel(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, scholarship.ErrScholarshipNotFound)
	assert.Zero(t, f.channels.calls)
}

func TestGetOrCreateChannelProvisioningFails(t *testing.T) {
	f := newDiscussionFixture(t)
	f.channels.err = ErrChannelProvisioning

	_, err := f.service.GetOrCreateChannel(context.Background(), uuid.New(), f.program.ID)
	assert.ErrorIs(t, err, ErrChannelProvisioning)

	// nothing persisted on failure; a retry provisions again
	f.channels.err = nil
	result, err := f.service.GetOrCreateChannel(context.Background(), uuid.New(), f.program.ID)
	require.NoError(t, err)
	assert.Equal(t, "channel created", result.Status)
}

func TestReadByScholarship(t *testing.T) {
	f := newDiscussionFixture(t)
	ctx := context.Background()

	_, err := f.service.ReadByScholarship(ctx, f.program.ID)
	assert.ErrorIs(t, err, ErrDiscussionNotFound)

	created, err := f.service.GetOrCreateChannel(ctx, uuid.New(), f.program.ID)
	require.NoError(t, err)

	found, err := f.service.ReadByScholarship(ctx, f.program.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ChannelLink, found.ChannelLink)
}
