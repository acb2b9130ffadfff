package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fayda/internal/identity/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func testRecord(name string) *models.RegistryRecord {
	return &models.RegistryRecord{
		FaydaID:      "2205150100000008",
		FullName:     name,
		Region:       "Tigray",
		BirthYear:    2022,
		RegisteredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (s *InMemoryStoreSuite) TestFind() {
	ctx := context.Background()

	s.Run("missing ID returns ErrNotFound", func() {
		record, err := s.store.Find(ctx, "2205150100000008")
		s.ErrorIs(err, ErrNotFound)
		s.Nil(record)
	})

	s.Run("returned record is a copy", func() {
		_, _, err := s.store.Register(ctx, testRecord("John Doe"))
		s.Require().NoError(err)

		found, err := s.store.Find(ctx, "2205150100000008")
		s.Require().NoError(err)
		found.FullName = "Mallory"

		again, err := s.store.Find(ctx, "2205150100000008")
		s.Require().NoError(err)
		s.Equal("John Doe", again.FullName)
	})
}

func (s *InMemoryStoreSuite) TestRegister() {
	ctx := context.Background()

	s.Run("first registration creates the record", func() {
		stored, created, err := s.store.Register(ctx, testRecord("John Doe"))
		s.Require().NoError(err)
		s.True(created)
		s.Equal("John Doe", stored.FullName)
	})

	s.Run("second registration keeps the original binding", func() {
		stored, created, err := s.store.Register(ctx, testRecord("Jane Doe"))
		s.Require().NoError(err)
		s.False(created)
		s.Equal("John Doe", stored.FullName)

		found, err := s.store.Find(ctx, "2205150100000008")
		s.Require().NoError(err)
		s.Equal("John Doe", found.FullName)
	})

	s.Run("nil record is rejected", func() {
		_, _, err := s.store.Register(ctx, nil)
		s.Error(err)
	})
}

func (s *InMemoryStoreSuite) TestConcurrentRegisterBindsOnce() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var created atomic.Int32
	names := make([]string, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			stored, ok, err := s.store.Register(ctx, testRecord("User "+string(rune('A'+idx%26))))
			if err != nil {
				return
			}
			if ok {
				created.Add(1)
			}
			names[idx] = stored.FullName
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), created.Load(), "exactly one registration should win")
	for _, name := range names {
		s.Equal(names[0], name, "every caller should observe the winning binding")
	}
}

func (s *InMemoryStoreSuite) TestReset() {
	ctx := context.Background()
	_, _, err := s.store.Register(ctx, testRecord("John Doe"))
	s.Require().NoError(err)

	s.Require().NoError(s.store.Reset(ctx))

	_, err = s.store.Find(ctx, "2205150100000008")
	s.ErrorIs(err, ErrNotFound)

	stored, created, err := s.store.Register(ctx, testRecord("Jane Doe"))
	s.Require().NoError(err)
	s.True(created)
	s.Equal("Jane Doe", stored.FullName)
}

func (s *InMemoryStoreSuite) TestBackend() {
	s.Equal(BackendMemory, s.store.Backend())
	s.NoError(s.store.Ping(context.Background()))
}
