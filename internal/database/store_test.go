package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"github.com/edgard/charsheet/internal/database"
)

// storeSuite opens a fresh migrated SQLite file for every test.
type storeSuite struct {
	suite.Suite
	db    *sqlx.DB
	store database.Store
	ctx   context.Context
}

func (s *storeSuite) SetupTest() {
	db, err := database.NewDB(filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)

	s.db = db
	s.store = database.NewStore(db, nil)
	s.ctx = context.Background()
}

func (s *storeSuite) TearDownTest() {
	database.CloseDB(s.db)
}

func (s *storeSuite) countRows(table string) int {
	var n int
	s.Require().NoError(s.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestStore(t *testing.T) {
	suite.Run(t, new(storeSuite))
}
