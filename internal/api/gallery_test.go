package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func galleryRequest(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	if image != nil {
		part, err := writer.CreateFormFile("image", "nook.png")
		require.NoError(t, err)

		_, err = part.Write(image)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func TestHandleCreateGalleryPost(t *testing.T) {
	valid := map[string]string{"title": "Sunday nook", "category": "READING_NOOK"}

	with := func(k, v string) map[string]string {
		out := map[string]string{}
		for key, val := range valid {
			out[key] = val
		}
		out[k] = v
		return out
	}

	tests := []struct {
		name           string
		fields         map[string]string
		image          []byte
		uploadFileFunc func(ctx context.Context, file io.Reader, key string, contentType string) (string, error)
		expectedCode   int
		expectedField  string
	}{
		{
			name:          "should return 400 if the image is missing",
			fields:        valid,
			expectedCode:  http.StatusBadRequest,
			expectedField: "image",
		},
		{
			name:          "should return 400 if the title is missing",
			fields:        map[string]string{"category": "READING_NOOK"},
			image:         pngHeader,
			expectedCode:  http.StatusBadRequest,
			expectedField: "title",
		},
		{
			name:          "should return 400 for an unknown category",
			fields:        with("category", "SELFIES"),
			image:         pngHeader,
			expectedCode:  http.StatusBadRequest,
			expectedField: "category",
		},
		{
			name:          "should return 400 if isPublic is not a boolean",
			fields:        with("isPublic", "maybe"),
			image:         pngHeader,
			expectedCode:  http.StatusBadRequest,
			expectedField: "isPublic",
		},
		{
			name:   "should return 500 if the upload fails",
			fields: valid,
			image:  pngHeader,
			uploadFileFunc: func(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
				return "", errors.New("no object store configured")
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "should return 201 for a valid post",
			fields:       with("isPublic", "true"),
			image:        pngHeader,
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored *models.GalleryPost

			a := newTestApi(t, &testStore{
				createGalleryPostFunc: func(ctx context.Context, post *models.GalleryPost) (*models.GalleryPost, error) {
					stored = post
					return post, nil
				},
			})
			a.objectStore = &testObjectStore{uploadFileFunc: tt.uploadFileFunc}

			req := withUser(galleryRequest(t, tt.fields, tt.image), memberUser)
			rr := httptest.NewRecorder()

			a.HandleCreateGalleryPost(rr, req)

			require.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedField != "" {
				resp := decodeError(t, rr.Body.Bytes())
				require.NotEmpty(t, resp.Details)
				assert.Equal(t, tt.expectedField, resp.Details[0].Field)
			}

			if tt.expectedCode == http.StatusCreated {
				require.NotNil(t, stored)
				assert.True(t, strings.HasPrefix(stored.ImageURL, "http://mock-url.com/gallery/"))
				assert.True(t, stored.IsPublic)
				assert.Nil(t, stored.Description)
				assert.Equal(t, memberUser.ID, stored.UserID)
			}
		})
	}
}

func TestHandleGetGalleryPostsRejectsUnknownCategory(t *testing.T) {
	a := newTestApi(t, &testStore{})

	rr := httptest.NewRecorder()
	a.HandleGetGalleryPosts(rr, httptest.NewRequest(http.MethodGet, "/?category=SELFIES", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleDeleteGalleryPost(t *testing.T) {
	tests := []struct {
		name         string
		user         *models.User
		expectedCode int
	}{
		{name: "should return 401 for another member", user: otherUser, expectedCode: http.StatusUnauthorized},
		{name: "should let the owner delete", user: memberUser, expectedCode: http.StatusNoContent},
		{name: "should let admins delete", user: adminUser, expectedCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApi(t, &testStore{
				getGalleryPostFunc: func(ctx context.Context, id uuid.UUID) (*models.GalleryPost, error) {
					return &models.GalleryPost{ID: id, UserID: memberUser.ID}, nil
				},
			})

			req := withUser(withURLParams(httptest.NewRequest(http.MethodDelete, "/", nil), "postId", uuid.NewString()), tt.user)
			rr := httptest.NewRecorder()

			a.HandleDeleteGalleryPost(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
