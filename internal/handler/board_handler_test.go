package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"messageboard/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShowSubmitForm_Empty(t *testing.T) {
	router := newTestRouter(t, new(mockStore), nil)

	w := serve(router, httptestGet("/"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<form method="post" action="/">`)
	assert.NotContains(t, w.Body.String(), "Thanks for submitting")
	assert.NotContains(t, w.Body.String(), `class="error"`)
}

func TestSubmitThenView_ShowsMessage(t *testing.T) {
	store := newSQLiteStore(t, true)
	router := newTestRouter(t, store, nil)

	w := serve(router, formRequest(url.Values{"user": {"alice"}, "message": {"hi"}}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thanks for submitting a message, alice!")
	assert.Contains(t, w.Body.String(), "<blockquote>hi</blockquote>")
	assert.Contains(t, w.Body.String(), `<textarea name="message" id="message">hi</textarea>`)
	assert.Contains(t, w.Body.String(), `<input type="text" name="user" id="user" value="alice">`)

	w = serve(router, httptestGet("/view/"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<blockquote>hi</blockquote>")
	assert.Contains(t, w.Body.String(), "- alice")
}

func TestSubmit_MissingFieldWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"missing message", url.Values{"user": {"alice"}}},
		{"missing user", url.Values{"message": {"hi"}}},
		{"empty user", url.Values{"user": {""}, "message": {"hi"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newSQLiteStore(t, true)
			router := newTestRouter(t, store, nil)

			w := serve(router, formRequest(tt.form))

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), errMissingFieldText)
			assert.NotContains(t, w.Body.String(), "Thanks for submitting")

			total, err := store.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}
}

func TestSubmit_StoreUnavailable(t *testing.T) {
	store := new(mockStore)
	store.On("Append", mock.Anything, "alice", "hi").Return(models.Message{}, errDiskGone)
	router := newTestRouter(t, store, nil)

	w := serve(router, formRequest(url.Values{"user": {"alice"}, "message": {"hi"}}))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), errUnavailableText)
	assert.NotContains(t, w.Body.String(), "Thanks for submitting")
	store.AssertExpectations(t)
}

func TestView_EmptyStore(t *testing.T) {
	router := newTestRouter(t, newSQLiteStore(t, true), nil)

	w := serve(router, httptestGet("/view/"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), errNoMessagesText)
	assert.NotContains(t, w.Body.String(), "<li>")
}

func TestView_MissingTable(t *testing.T) {
	router := newTestRouter(t, newSQLiteStore(t, false), nil)

	w := serve(router, httptestGet("/view/"))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), errUnavailableText)
	assert.NotContains(t, w.Body.String(), "<li>")
}

func TestView_RequestsFixedSample(t *testing.T) {
	store := new(mockStore)
	store.On("Sample", mock.Anything, SampleSize).Return([]models.Message{
		{ID: 1, Username: "alice", Body: "hi"},
		{ID: 2, Username: "bob", Body: "hello"},
	}, nil)
	router := newTestRouter(t, store, nil)

	w := serve(router, httptestGet("/view/?n=50"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "- alice")
	assert.Contains(t, w.Body.String(), "- bob")
	store.AssertExpectations(t)
}
