package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mimihimesama/item-simulator/internal/entities"
	"github.com/mimihimesama/item-simulator/internal/errors"
	"github.com/mimihimesama/item-simulator/internal/pkg/clock"
	"github.com/mimihimesama/item-simulator/internal/repositories/character"
	"github.com/mimihimesama/item-simulator/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    character.Repository
	clock   *clock.Fixed
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()
	s.clock = &clock.Fixed{T: time.Unix(1700000000, 0)}

	repo, err := character.NewRedis(&character.RedisConfig{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) newCharacter(id int64, name string) *entities.Character {
	return &entities.Character{
		ID:            id,
		Name:          name,
		Health:        500,
		Power:         100,
		EquippedItems: []entities.EquippedItem{},
		Version:       1,
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(1, "nyanpuku"),
	})
	s.Require().NoError(err)
	s.Equal(int64(1700000000), created.Character.CreatedAt)
	s.Equal(int64(1700000000), created.Character.UpdatedAt)
	s.Equal(int64(1), created.Character.Version)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: 1})
	s.Require().NoError(err)
	s.Equal("nyanpuku", got.Character.Name)
	s.Equal(int64(500), got.Character.Health)
	s.Equal(int64(100), got.Character.Power)
	s.Empty(got.Character.EquippedItems)
}

func (s *RedisRepositoryTestSuite) TestCreate_DuplicateName() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(1, "nyanpuku"),
	})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(2, "nyanpuku"),
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreate_DuplicateID() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(1, "first"),
	})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(1, "second"),
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))

	// The losing create must release its name claim.
	_, err = s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(2, "second"),
	})
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestCreate_Validation() {
	testCases := []struct {
		name      string
		character *entities.Character
	}{
		{name: "nil character", character: nil},
		{name: "non-positive id", character: s.newCharacter(0, "nyanpuku")},
		{name: "empty name", character: s.newCharacter(1, "")},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, character.CreateInput{Character: tc.character})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: 42})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetByName() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(1, "nyanpuku"),
	})
	s.Require().NoError(err)

	got, err := s.repo.GetByName(s.ctx, character.GetByNameInput{Name: "nyanpuku"})
	s.Require().NoError(err)
	s.Equal(int64(1), got.Character.ID)

	_, err = s.repo.GetByName(s.ctx, character.GetByNameInput{Name: "unknown"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate_BumpsVersion() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(1, "nyanpuku"),
	})
	s.Require().NoError(err)

	char := created.Character
	char.Health = 550
	s.clock.T = time.Unix(1700000100, 0)

	updated, err := s.repo.Update(s.ctx, character.UpdateInput{Character: char})
	s.Require().NoError(err)
	s.Equal(int64(2), updated.Character.Version)
	s.Equal(int64(1700000100), updated.Character.UpdatedAt)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: 1})
	s.Require().NoError(err)
	s.Equal(int64(550), got.Character.Health)
	s.Equal(int64(2), got.Character.Version)
}

func (s *RedisRepositoryTestSuite) TestUpdate_VersionConflict() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(1, "nyanpuku"),
	})
	s.Require().NoError(err)

	fresh := *created.Character
	stale := *created.Character

	fresh.Health = 550
	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: &fresh})
	s.Require().NoError(err)

	stale.Power = 150
	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: &stale})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))

	// The losing write must not have landed.
	got, err := s.repo.Get(s.ctx, character.GetInput{ID: 1})
	s.Require().NoError(err)
	s.Equal(int64(550), got.Character.Health)
	s.Equal(int64(100), got.Character.Power)
}

func (s *RedisRepositoryTestSuite) TestUpdate_NotFound() {
	_, err := s.repo.Update(s.ctx, character.UpdateInput{
		Character: s.newCharacter(42, "ghost"),
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(1, "nyanpuku"),
	})
	s.Require().NoError(err)

	deleted, err := s.repo.Delete(s.ctx, character.DeleteInput{ID: 1})
	s.Require().NoError(err)
	s.Equal("nyanpuku", deleted.Character.Name)

	_, err = s.repo.Get(s.ctx, character.GetInput{ID: 1})
	s.True(errors.IsNotFound(err))

	// The name index entry goes with the record, so the name is reusable.
	_, err = s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(2, "nyanpuku"),
	})
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestDelete_NotFound() {
	_, err := s.repo.Delete(s.ctx, character.DeleteInput{ID: 42})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestList_AscendingByID() {
	for _, c := range []*entities.Character{
		s.newCharacter(3, "third"),
		s.newCharacter(1, "first"),
		s.newCharacter(2, "second"),
	} {
		_, err := s.repo.Create(s.ctx, character.CreateInput{Character: c})
		s.Require().NoError(err)
	}

	listOutput, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(listOutput.Characters, 3)
	s.Equal(int64(1), listOutput.Characters[0].ID)
	s.Equal(int64(2), listOutput.Characters[1].ID)
	s.Equal(int64(3), listOutput.Characters[2].ID)
}

func (s *RedisRepositoryTestSuite) TestList_Empty() {
	listOutput, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Empty(listOutput.Characters)
}

func (s *RedisRepositoryTestSuite) TestMaxAllocatedID() {
	maxID, err := s.repo.MaxAllocatedID(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), maxID)

	for _, c := range []*entities.Character{
		s.newCharacter(1, "first"),
		s.newCharacter(7, "seventh"),
	} {
		_, err := s.repo.Create(s.ctx, character.CreateInput{Character: c})
		s.Require().NoError(err)
	}

	maxID, err = s.repo.MaxAllocatedID(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(7), maxID)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
