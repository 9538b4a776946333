package repository

import (
	"context"
	"testing"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MailboxRepositoryTestSuite is the test suite for MailboxRepository
type MailboxRepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	repo     MailboxRepository
	messages MessageRepository
}

// SetupSuite runs once before all tests
func (s *MailboxRepositoryTestSuite) SetupSuite() {
	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	err = db.AutoMigrate(&models.Mailbox{}, &models.Message{})
	require.NoError(s.T(), err)

	s.db = db
	s.repo = NewMailboxRepository(db)
	s.messages = NewMessageRepository(db)
}

// TearDownSuite runs once after all tests
func (s *MailboxRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SetupTest runs before each test - clean up data
func (s *MailboxRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM messages")
	s.db.Exec("DELETE FROM mailboxes")
}

// TestMailboxRepositoryTestSuite runs the test suite
func TestMailboxRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MailboxRepositoryTestSuite))
}

func (s *MailboxRepositoryTestSuite) newMailbox(ownerType models.OwnerType, ownerID string, kind models.MailboxKind) *models.Mailbox {
	mailbox := &models.Mailbox{OwnerType: ownerType, OwnerID: ownerID, Kind: kind}
	require.NoError(s.T(), s.repo.Create(context.Background(), mailbox))
	return mailbox
}

// ==================== Create Tests ====================

func (s *MailboxRepositoryTestSuite) TestCreate_Success() {
	// Arrange
	mailbox := &models.Mailbox{
		OwnerType: models.OwnerUser,
		OwnerID:   "user-1",
		Kind:      models.KindInbox,
	}

	// Act
	err := s.repo.Create(context.Background(), mailbox)

	// Assert
	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), mailbox.ID)
	assert.NotZero(s.T(), mailbox.CreatedAt)
}

func (s *MailboxRepositoryTestSuite) TestCreate_DuplicateOwnerKind_ReturnsError() {
	// Arrange
	s.newMailbox(models.OwnerUser, "user-1", models.KindInbox)
	duplicate := &models.Mailbox{
		OwnerType: models.OwnerUser,
		OwnerID:   "user-1",
		Kind:      models.KindInbox,
	}

	// Act
	err := s.repo.Create(context.Background(), duplicate)

	// Assert
	assert.ErrorIs(s.T(), err, ErrDuplicateEntry)
}

func (s *MailboxRepositoryTestSuite) TestCreate_SameOwnerDifferentKind_Succeeds() {
	// Arrange
	s.newMailbox(models.OwnerUser, "user-1", models.KindInbox)
	outbox := &models.Mailbox{
		OwnerType: models.OwnerUser,
		OwnerID:   "user-1",
		Kind:      models.KindOutbox,
	}

	// Act
	err := s.repo.Create(context.Background(), outbox)

	// Assert
	assert.NoError(s.T(), err)
}

// ==================== GetByID Tests ====================

func (s *MailboxRepositoryTestSuite) TestGetByID_Success() {
	// Arrange
	created := s.newMailbox(models.OwnerTeam, "team-1", models.KindInbox)

	// Act
	found, err := s.repo.GetByID(context.Background(), created.ID)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, found.ID)
	assert.Equal(s.T(), models.OwnerTeam, found.OwnerType)
	assert.Equal(s.T(), "team-1", found.OwnerID)
}

func (s *MailboxRepositoryTestSuite) TestGetByID_NotFound() {
	// Act
	found, err := s.repo.GetByID(context.Background(), "missing-id")

	// Assert
	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.Nil(s.T(), found)
}

// ==================== GetByOwner Tests ====================

func (s *MailboxRepositoryTestSuite) TestGetByOwner_Success() {
	// Arrange
	inbox := s.newMailbox(models.OwnerUser, "user-1", models.KindInbox)
	s.newMailbox(models.OwnerUser, "user-1", models.KindOutbox)

	// Act
	found, err := s.repo.GetByOwner(context.Background(), models.OwnerUser, "user-1", models.KindInbox)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), inbox.ID, found.ID)
}

func (s *MailboxRepositoryTestSuite) TestGetByOwner_NotFound() {
	// Act
	found, err := s.repo.GetByOwner(context.Background(), models.OwnerUser, "nobody", models.KindInbox)

	// Assert
	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.Nil(s.T(), found)
}

// ==================== ListByOwner Tests ====================

func (s *MailboxRepositoryTestSuite) TestListByOwner_ReturnsAllKinds() {
	// Arrange
	s.newMailbox(models.OwnerUser, "user-1", models.KindInbox)
	s.newMailbox(models.OwnerUser, "user-1", models.KindOutbox)
	s.newMailbox(models.OwnerUser, "user-2", models.KindInbox)

	// Act
	mailboxes, err := s.repo.ListByOwner(context.Background(), models.OwnerUser, "user-1")

	// Assert
	require.NoError(s.T(), err)
	assert.Len(s.T(), mailboxes, 2)
}

func (s *MailboxRepositoryTestSuite) TestListByOwner_Empty() {
	// Act
	mailboxes, err := s.repo.ListByOwner(context.Background(), models.OwnerTeam, "team-x")

	// Assert
	require.NoError(s.T(), err)
	assert.Empty(s.T(), mailboxes)
}

// ==================== Delete Tests ====================

func (s *MailboxRepositoryTestSuite) TestDelete_CascadesMessages() {
	// Arrange
	inbox := s.newMailbox(models.OwnerUser, "user-1", models.KindInbox)
	otherInbox := s.newMailbox(models.OwnerUser, "user-2", models.KindInbox)

	ctx := context.Background()
	received := &models.Message{
		Subject: "to doomed mailbox", Body: "b",
		SenderID: "user-2", FromMailboxID: "out-2", ToMailboxID: inbox.ID,
	}
	require.NoError(s.T(), s.messages.Create(ctx, received))
	sent := &models.Message{
		Subject: "from doomed mailbox", Body: "b",
		SenderID: "user-1", FromMailboxID: inbox.ID, ToMailboxID: otherInbox.ID,
	}
	require.NoError(s.T(), s.messages.Create(ctx, sent))
	unrelated := &models.Message{
		Subject: "unrelated", Body: "b",
		SenderID: "user-3", FromMailboxID: "out-3", ToMailboxID: otherInbox.ID,
	}
	require.NoError(s.T(), s.messages.Create(ctx, unrelated))

	// Act
	err := s.repo.Delete(ctx, inbox.ID)

	// Assert
	require.NoError(s.T(), err)

	_, err = s.repo.GetByID(ctx, inbox.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	var remaining int64
	s.db.Model(&models.Message{}).Count(&remaining)
	assert.Equal(s.T(), int64(1), remaining)

	survivor, err := s.messages.GetByID(ctx, unrelated.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "unrelated", survivor.Subject)
}

func (s *MailboxRepositoryTestSuite) TestDelete_NotFound() {
	// Act
	err := s.repo.Delete(context.Background(), "missing-id")

	// Assert
	assert.ErrorIs(s.T(), err, ErrNotFound)
}
