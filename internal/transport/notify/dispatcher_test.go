package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/transport/notify/client"
	"github.com/fsdevblog/botshop/internal/transport/notify/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

const testChatID int64 = 777

type DispatcherTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockSender *mocks.MockSender
	dispatcher *Dispatcher
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSender = mocks.NewMockSender(s.ctrl)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s.dispatcher = New(s.mockSender, testChatID, logger)
}

func (s *DispatcherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func testOrder(id int64) domain.Order {
	return domain.Order{
		ID:          id,
		UserID:      42,
		TotalAmount: decimal.RequireFromString("100.00"),
		Items: []domain.OrderItem{
			{ProductID: 7, ProductName: "Чай", Quantity: 2, Price: decimal.RequireFromString("50.00")},
		},
	}
}

func (s *DispatcherTestSuite) TestNotifyNewOrder() {
	s.mockSender.EXPECT().
		SendMessage(gomock.Any(), testChatID, FormatNewOrder(testOrder(1), time.UTC)).
		Return(1, nil)

	s.True(s.dispatcher.NotifyNewOrder(context.Background(), testOrder(1), 1))
}

func (s *DispatcherTestSuite) TestNotifyNewOrderFailureIsSwallowed() {
	s.mockSender.EXPECT().SendMessage(gomock.Any(), testChatID, gomock.Any()).
		Return(0, errors.New("connection refused"))

	s.False(s.dispatcher.NotifyNewOrder(context.Background(), testOrder(1), 1))
}

func (s *DispatcherTestSuite) TestNotifyNewOrderPanicIsRecovered() {
	s.mockSender.EXPECT().SendMessage(gomock.Any(), testChatID, gomock.Any()).
		DoAndReturn(func(context.Context, int64, string) (int, error) {
			panic("boom")
		})

	s.NotPanics(func() {
		s.False(s.dispatcher.NotifyNewOrder(context.Background(), testOrder(1), 1))
	})
}

func (s *DispatcherTestSuite) TestNotifyNewOrderRetryAfter() {
	gomock.InOrder(
		s.mockSender.EXPECT().SendMessage(gomock.Any(), testChatID, gomock.Any()).
			Return(0, client.NewTooManyRequestError(10*time.Millisecond)),
		s.mockSender.EXPECT().SendMessage(gomock.Any(), testChatID, gomock.Any()).
			Return(2, nil),
	)

	s.True(s.dispatcher.NotifyNewOrder(context.Background(), testOrder(1), 1))
}

func (s *DispatcherTestSuite) TestNotifyNewOrderRetryExceedsTimeout() {
	s.dispatcher.SetSendTimeout(50 * time.Millisecond)
	s.mockSender.EXPECT().SendMessage(gomock.Any(), testChatID, gomock.Any()).
		Return(0, client.NewTooManyRequestError(time.Minute)).Times(1)

	s.False(s.dispatcher.NotifyNewOrder(context.Background(), testOrder(1), 1))
}

func (s *DispatcherTestSuite) TestNotifyNewOrderRespectsTimeout() {
	s.dispatcher.SetSendTimeout(20 * time.Millisecond)
	s.mockSender.EXPECT().SendMessage(gomock.Any(), testChatID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, _ string) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})

	start := time.Now()
	s.False(s.dispatcher.NotifyNewOrder(context.Background(), testOrder(1), 1))
	s.Less(time.Since(start), time.Second)
}

func (s *DispatcherTestSuite) TestEnqueueQueueFull() {
	s.dispatcher.SetQueueSize(1)

	s.True(s.dispatcher.Enqueue(testOrder(1)))
	s.False(s.dispatcher.Enqueue(testOrder(2)))
}

func (s *DispatcherTestSuite) TestRun() {
	s.dispatcher.SetWorkers(3)

	wg := new(sync.WaitGroup)
	wg.Add(5)
	s.mockSender.EXPECT().SendMessage(gomock.Any(), testChatID, gomock.Any()).
		DoAndReturn(func(context.Context, int64, string) (int, error) {
			wg.Done()
			return 1, nil
		}).Times(5)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.dispatcher.Run(ctx)
		close(done)
	}()

	for i := range 5 {
		s.True(s.dispatcher.Enqueue(testOrder(int64(i + 1))))
	}
	wg.Wait()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("dispatcher did not stop")
	}
}
