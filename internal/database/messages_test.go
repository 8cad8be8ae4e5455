package database_test

func (s *storeSuite) TestChatHistoryIsAppendOnly() {
	first, err := s.store.AddChatMessage(s.ctx, "user", "gpt-3.5-turbo", "Describe Aramil.")
	s.Require().NoError(err)
	s.NotZero(first.ID)
	s.False(first.Timestamp.IsZero())

	_, err = s.store.AddChatMessage(s.ctx, "gpt-3.5-turbo", "user", "A studious elf wizard.")
	s.Require().NoError(err)

	history, err := s.store.ListChatHistory(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal("user", history[0].From)
	s.Equal("gpt-3.5-turbo", history[0].To)
	s.Equal("Describe Aramil.", history[0].Content)
	s.Equal("A studious elf wizard.", history[1].Content)
}

func (s *storeSuite) TestChatHistoryEmpty() {
	history, err := s.store.ListChatHistory(s.ctx)
	s.Require().NoError(err)
	s.NotNil(history)
	s.Empty(history)
}

func (s *storeSuite) TestPingAndMaintenance() {
	s.Require().NoError(s.store.Ping(s.ctx))
	s.Require().NoError(s.store.RunSQLMaintenance(s.ctx))
}
