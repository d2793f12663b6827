package usecase

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/domain/mocks"
	"github.com/x-xyz/auction/service/notify"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
)

func TestUpload(t *testing.T) {
	c := ctx.Background()
	files := mocks.NewFileRepo(t)
	files.On("Upload", c, "lamp.png", pngHeader).Return("uploads/lamp.png", nil).Once()
	files.On("Upload", c, "terms.pdf", pdfHeader).Return("uploads/terms.pdf", nil).Once()

	u := New(files, notify.NewRecorder())

	path, err := u.Upload(c, "lamp.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.Equal(t, "uploads/lamp.png", path)

	path, err = u.Upload(c, "terms.pdf", bytes.NewReader(pdfHeader))
	require.NoError(t, err)
	require.Equal(t, "uploads/terms.pdf", path)
}

func TestUploadRejectsLocally(t *testing.T) {
	c := ctx.Background()
	files := mocks.NewFileRepo(t)
	u := New(files, notify.NewRecorder())

	_, err := u.Upload(c, "empty.png", bytes.NewReader(nil))
	require.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = u.Upload(c, "notes.txt", strings.NewReader("plain words"))
	require.True(t, errors.Is(err, domain.ErrInvalidInput))

	big := append(append([]byte{}, pngHeader...), make([]byte, domain.MaxUploadSize)...)
	_, err = u.Upload(c, "big.png", bytes.NewReader(big))
	require.True(t, errors.Is(err, domain.ErrInvalidInput))

	files.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadRejectedByBackend(t *testing.T) {
	c := ctx.Background()
	files := mocks.NewFileRepo(t)
	files.On("Upload", c, "lamp.png", pngHeader).
		Return("", &domain.RequestError{Status: 200, Message: "Storage full"}).Once()
	rec := notify.NewRecorder()

	_, err := New(files, rec).Upload(c, "lamp.png", bytes.NewReader(pngHeader))
	require.Error(t, err)
	last, ok := rec.Last()
	require.True(t, ok)
	require.Equal(t, "Storage full", last.Message)
}
