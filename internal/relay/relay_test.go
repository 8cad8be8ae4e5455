package relay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/edgard/charsheet/internal/database"
	"github.com/edgard/charsheet/internal/relay"
	relaymock "github.com/edgard/charsheet/internal/relay/mock"
)

const testModel = "gpt-3.5-turbo"

type ServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockClient  *relaymock.MockClient
	mockHistory *relaymock.MockHistoryRecorder
	ctx         context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = relaymock.NewMockClient(s.ctrl)
	s.mockHistory = relaymock.NewMockHistoryRecorder(s.ctrl)
	s.ctx = context.Background()
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceTestSuite) TestRelayReturnsReply() {
	messages := []relay.Message{
		{Role: relay.RoleSystem, Content: "You are a dungeon master."},
		{Role: relay.RoleUser, Content: "Describe the tavern."},
	}
	s.mockClient.EXPECT().Chat(s.ctx, "gpt-4o", messages).Return("Smoke and laughter.", nil)

	svc := relay.NewService(s.mockClient, nil, testModel, nil)
	reply, err := svc.Relay(s.ctx, "gpt-4o", messages)

	s.Require().NoError(err)
	s.Equal("Smoke and laughter.", reply)
}

func (s *ServiceTestSuite) TestRelayUsesDefaultModel() {
	messages := []relay.Message{{Role: relay.RoleUser, Content: "Hi"}}
	s.mockClient.EXPECT().Chat(s.ctx, testModel, messages).Return("Hello", nil)

	svc := relay.NewService(s.mockClient, nil, testModel, nil)
	_, err := svc.Relay(s.ctx, "  ", messages)

	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestRelayWrapsBackendFailure() {
	backendErr := errors.New("503 service unavailable")
	s.mockClient.EXPECT().Chat(gomock.Any(), gomock.Any(), gomock.Any()).Return("", backendErr).Times(1)

	svc := relay.NewService(s.mockClient, s.mockHistory, testModel, nil)
	_, err := svc.Relay(s.ctx, "", []relay.Message{{Role: relay.RoleUser, Content: "Hi"}})

	var relayErr *relay.RelayError
	s.Require().ErrorAs(err, &relayErr)
	s.Equal(testModel, relayErr.Model)
	s.ErrorIs(err, backendErr)
	s.Equal("An error occurred: 503 service unavailable", err.Error())
}

func (s *ServiceTestSuite) TestRelayRejectsBadConversation() {
	svc := relay.NewService(s.mockClient, nil, testModel, nil)

	_, err := svc.Relay(s.ctx, "", nil)
	var relayErr *relay.RelayError
	s.ErrorAs(err, &relayErr)
	s.ErrorIs(err, relay.ErrInvalidConversation)

	_, err = svc.Relay(s.ctx, "", []relay.Message{{Role: "narrator", Content: "..."}})
	s.ErrorAs(err, &relayErr)
	s.ErrorIs(err, relay.ErrInvalidConversation)
	s.Contains(err.Error(), `unsupported role "narrator"`)
}

func (s *ServiceTestSuite) TestRelayWithoutClient() {
	svc := relay.NewService(nil, nil, testModel, nil)

	_, err := svc.Relay(s.ctx, "", []relay.Message{{Role: relay.RoleUser, Content: "Hi"}})
	s.ErrorIs(err, relay.ErrNotConfigured)
}

func (s *ServiceTestSuite) TestRelayRecordsHistory() {
	messages := []relay.Message{{Role: relay.RoleUser, Content: "Name an elf."}}
	gomock.InOrder(
		s.mockClient.EXPECT().Chat(s.ctx, testModel, messages).Return("Aramil", nil),
		s.mockHistory.EXPECT().AddChatMessage(s.ctx, relay.HistoryUser, testModel, "Name an elf.").
			Return(&database.ChatMessage{ID: 1}, nil),
		s.mockHistory.EXPECT().AddChatMessage(s.ctx, testModel, relay.HistoryUser, "Aramil").
			Return(&database.ChatMessage{ID: 2}, nil),
	)

	svc := relay.NewService(s.mockClient, s.mockHistory, testModel, nil)
	reply, err := svc.Relay(s.ctx, "", messages)

	s.Require().NoError(err)
	s.Equal("Aramil", reply)
}

func (s *ServiceTestSuite) TestRelayIgnoresHistoryFailure() {
	messages := []relay.Message{{Role: relay.RoleUser, Content: "Name an elf."}}
	s.mockClient.EXPECT().Chat(s.ctx, testModel, messages).Return("Aramil", nil)
	s.mockHistory.EXPECT().AddChatMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("disk full"))

	svc := relay.NewService(s.mockClient, s.mockHistory, testModel, nil)
	reply, err := svc.Relay(s.ctx, "", messages)

	s.Require().NoError(err)
	s.Equal("Aramil", reply)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
