package upload

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of the Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, req Request) (*Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func pngFile() FileDescriptor {
	return NewFileDescriptor("a.png", "image/png", []byte("12345"))
}

func TestOrchestratorSuccessfulFileUpload(t *testing.T) {
	srv, _ := newAddServer(t, http.StatusOK, `{"Hash":"Qm123","Name":"a.png","Size":"5"}`)
	recorder := &Recorder{}
	o := NewOrchestrator(NewTransport(srv.URL, testGateway), DefaultPolicy(), WithNotifier(recorder))

	res, err := o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})
	require.NoError(t, err)

	want := Result{
		ContentHash: "Qm123",
		GatewayURL:  testGateway + "/ipfs/Qm123",
		Name:        "a.png",
		Size:        "5",
		MediaType:   "image/png",
	}
	assert.Equal(t, want, *res)

	state := o.State()
	assert.Equal(t, StatusIdle, state.Status)
	require.NotNil(t, state.Current)
	assert.Equal(t, want, *state.Current)
	assert.NoError(t, state.Err)

	assert.Equal(t, "Qm123", o.CopyableHash())
	assert.Equal(t, testGateway+"/ipfs/Qm123", o.CopyableURL())
	assert.Equal(t, []Notification{{Level: LevelSuccess, Message: "File uploaded"}}, recorder.Drain())
}

func TestOrchestratorRejectionNeverEntersInFlight(t *testing.T) {
	sender := new(MockSender)
	recorder := &Recorder{}
	var seen []Status
	o := NewOrchestrator(sender, DefaultPolicy(), WithNotifier(recorder))
	o.notifier = multiNotifier{o.notifier, NotifierFunc(func(Notification) {
		seen = append(seen, o.State().Status)
	})}

	files := []FileDescriptor{pngFile(), NewFileDescriptor("b.png", "image/png", []byte("x"))}
	res, err := o.SubmitFiles(context.Background(), files)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, StatusIdle, o.State().Status)
	assert.Equal(t, []Status{StatusIdle}, seen)
	assert.Equal(t, []Notification{{Level: LevelError, Message: "Too many files"}}, recorder.Drain())
	assert.Equal(t, int64(1), o.Stats().Rejected)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestOrchestratorEmitsOneNotificationPerValidationMessage(t *testing.T) {
	sender := new(MockSender)
	recorder := &Recorder{}
	o := NewOrchestrator(sender, NewPolicy(1, []string{".png"}), WithNotifier(recorder))

	_, err := o.SubmitFiles(context.Background(), []FileDescriptor{NewFileDescriptor("a.txt", "text/plain", []byte("ab"))})
	require.Error(t, err)

	notes := recorder.Drain()
	require.Len(t, notes, 2)
	for _, n := range notes {
		assert.Equal(t, LevelError, n.Level)
	}
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestOrchestratorIsInFlightWhileSending(t *testing.T) {
	sender := new(MockSender)
	o := NewOrchestrator(sender, DefaultPolicy())

	var during State
	sender.On("Send", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { during = o.State() }).
		Return(&Result{ContentHash: "Qm1"}, nil)

	_, err := o.SubmitText(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, StatusInFlight, during.Status)
	assert.True(t, during.Uploading())
	assert.Equal(t, StatusIdle, o.State().Status)
	sender.AssertExpectations(t)
}

func TestOrchestratorFailureKeepsPreviousResult(t *testing.T) {
	sender := new(MockSender)
	recorder := &Recorder{}
	o := NewOrchestrator(sender, DefaultPolicy(), WithNotifier(recorder))

	first := &Result{ContentHash: "QmFirst", GatewayURL: testGateway + "/ipfs/QmFirst"}
	sender.On("Send", mock.Anything, mock.Anything).Return(first, nil).Once()
	_, err := o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})
	require.NoError(t, err)
	recorder.Drain()

	failure := requestFailed("http://api", http.StatusInternalServerError, errors.New("http status 500"))
	sender.On("Send", mock.Anything, mock.Anything).Return(nil, failure).Once()
	res, err := o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRequestFailed)

	state := o.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.ErrorIs(t, state.Err, ErrRequestFailed)
	require.NotNil(t, state.Current)
	assert.Equal(t, *first, *state.Current)

	notes := recorder.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelError, notes[0].Level)
	sender.AssertExpectations(t)
}

func TestOrchestratorServerErrorEndsFailed(t *testing.T) {
	srv, _ := newAddServer(t, http.StatusInternalServerError, "")
	o := NewOrchestrator(NewTransport(srv.URL, testGateway), DefaultPolicy())

	res, err := o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRequestFailed)
	state := o.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Nil(t, state.Current)
}

func TestOrchestratorMalformedResponseEndsFailed(t *testing.T) {
	srv, _ := newAddServer(t, http.StatusOK, `{"Hash":"Qm1"}`)
	o := NewOrchestrator(NewTransport(srv.URL, testGateway), DefaultPolicy())

	_, err := o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, StatusFailed, o.State().Status)
	assert.ErrorIs(t, o.State().Err, ErrMalformedResponse)
}

func TestOrchestratorSecondSuccessReplacesResult(t *testing.T) {
	sender := new(MockSender)
	o := NewOrchestrator(sender, DefaultPolicy())

	sender.On("Send", mock.Anything, mock.Anything).Return(&Result{ContentHash: "QmA", Size: "5"}, nil).Once()
	sender.On("Send", mock.Anything, mock.Anything).Return(&Result{ContentHash: "QmB", Size: "6"}, nil).Once()

	_, err := o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})
	require.NoError(t, err)
	_, err = o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})
	require.NoError(t, err)

	current, ok := o.Current()
	require.True(t, ok)
	assert.Equal(t, Result{ContentHash: "QmB", Size: "6"}, current)
	assert.Equal(t, int64(2), o.Stats().Succeeded)
}

func TestOrchestratorRecoversFromFailedState(t *testing.T) {
	sender := new(MockSender)
	o := NewOrchestrator(sender, DefaultPolicy())

	sender.On("Send", mock.Anything, mock.Anything).Return(nil, malformedResponse("http://api", errors.New("bad"))).Once()
	_, _ = o.SubmitText(context.Background(), "x")
	require.Equal(t, StatusFailed, o.State().Status)

	_, err := o.SubmitText(context.Background(), "")
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, StatusFailed, o.State().Status, "rejection keeps the failed status")

	sender.On("Send", mock.Anything, mock.Anything).Return(&Result{ContentHash: "QmOK"}, nil).Once()
	_, err = o.SubmitText(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, o.State().Status)
	assert.NoError(t, o.State().Err)
}

func TestOrchestratorTextUploadIsJSON(t *testing.T) {
	srv, _ := newAddServer(t, http.StatusOK, `{"Hash":"QmT","Name":"QmT","Size":"7"}`)
	o := NewOrchestrator(NewTransport(srv.URL, testGateway), DefaultPolicy())

	res, err := o.SubmitText(context.Background(), `{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, MediaTypeJSON, res.MediaType)
}

func TestOrchestratorRunsSuccessHooks(t *testing.T) {
	sender := new(MockSender)
	var hooked []Result
	o := NewOrchestrator(sender, DefaultPolicy(), WithSuccessHook(func(req Request, res Result) {
		_, isFile := req.(FilePayload)
		assert.True(t, isFile)
		hooked = append(hooked, res)
	}))

	sender.On("Send", mock.Anything, mock.Anything).Return(&Result{ContentHash: "QmH"}, nil).Once()
	sender.On("Send", mock.Anything, mock.Anything).Return(nil, requestFailed("x", 0, errors.New("down"))).Once()

	_, _ = o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})
	_, _ = o.SubmitFiles(context.Background(), []FileDescriptor{pngFile()})

	require.Len(t, hooked, 1)
	assert.Equal(t, "QmH", hooked[0].ContentHash)
}

func TestTransitionTableIsTotal(t *testing.T) {
	for _, status := range []Status{StatusIdle, StatusInFlight, StatusFailed} {
		for _, ev := range []event{eventRejected, eventAccepted, eventSucceeded, eventFailed} {
			_, ok := transitions[status][ev]
			assert.True(t, ok, "missing transition %s/%d", status, ev)
		}
	}
}

func TestNotifications(t *testing.T) {
	assert.Equal(t, LevelSuccess, Notifications(nil)[0].Level)
	assert.Len(t, Notifications(ValidationErrors{{Message: "a"}, {Message: "b"}}), 2)
	assert.Equal(t, "Upload failed: unexpected response from IPFS",
		Notifications(malformedResponse("x", errors.New("bad")))[0].Message)
	assert.Equal(t, "Upload failed: IPFS request did not succeed",
		Notifications(requestFailed("x", 500, errors.New("500")))[0].Message)
}
