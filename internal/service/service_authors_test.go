package service

import (
	"context"
	"testing"

	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/mock"
	"github.com/avdeenko/bookclub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuthorService(t *testing.T, ctrl *gomock.Controller) (AuthorService, *mock.MockAuthorRepository, *mock.MockBookRepository) {
	t.Helper()

	mockAuthors := mock.NewMockAuthorRepository(ctrl)
	mockBooks := mock.NewMockBookRepository(ctrl)

	return NewAuthorService(mockAuthors, mockBooks, logger.NewLogger("test")), mockAuthors, mockBooks
}

func TestAuthorService_CreateAuthor_RoleGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAuthors, _ := newTestAuthorService(t, ctrl)
	ctx := context.Background()

	author := models.Author{Name: "Ursula K. Le Guin"}

	_, err := svc.CreateAuthor(ctx, member, author)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	mockAuthors.EXPECT().CreateAuthor(ctx, author).Return(models.Author{AuthorID: 5, Name: author.Name}, nil)
	created, err := svc.CreateAuthor(ctx, editor, author)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.AuthorID)
}

func TestAuthorService_CreateAuthor_InvalidName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthorService(t, ctrl)

	_, err := svc.CreateAuthor(context.Background(), editor, models.Author{Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthorService_GetAuthor_EmbedsBooksAndLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAuthors, mockBooks := newTestAuthorService(t, ctrl)
	ctx := context.Background()

	mockAuthors.EXPECT().GetAuthor(ctx, int64(5)).Return(models.Author{
		AuthorID:  5,
		Name:      "Ursula K. Le Guin",
		BookCount: 2,
	}, nil)
	mockBooks.EXPECT().LatestByAuthors(ctx, []int64{5}).Return(map[int64]models.BookRef{
		5: {BookID: 9, Title: "The Dispossessed", PublicationYear: 1974},
	}, nil)
	mockBooks.EXPECT().ListBooks(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter models.BookFilter, page models.PageParams) ([]models.Book, int64, error) {
			require.NotNil(t, filter.AuthorID)
			assert.Equal(t, int64(5), *filter.AuthorID)
			assert.Equal(t, models.MaxPageSize, page.PageSize)
			return []models.Book{
				{BookID: 8, Title: "A Wizard of Earthsea", PublicationYear: 1968},
				{BookID: 9, Title: "The Dispossessed", PublicationYear: 1974},
			}, 2, nil
		},
	)

	author, err := svc.GetAuthor(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, author.LatestBook)
	assert.Equal(t, int64(9), author.LatestBook.BookID)
	assert.Len(t, author.Books, 2)
}

func TestAuthorService_ListAuthors_SkipsLatestLookupWithoutBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAuthors, _ := newTestAuthorService(t, ctrl)
	ctx := context.Background()

	mockAuthors.EXPECT().ListAuthors(ctx, gomock.Any(), gomock.Any()).Return([]models.Author{
		{AuthorID: 5, Name: "No Books Yet", BookCount: 0},
	}, int64(1), nil)

	authors, total, err := svc.ListAuthors(ctx, models.AuthorFilter{}, models.DefaultPageParams())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, authors, 1)
	assert.Nil(t, authors[0].LatestBook)
}

func TestAuthorService_DeleteAuthor_AdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAuthors, _ := newTestAuthorService(t, ctrl)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteAuthor(ctx, editor, 5), ErrPermissionDenied)

	mockAuthors.EXPECT().DeleteAuthor(ctx, int64(5)).Return(nil)
	require.NoError(t, svc.DeleteAuthor(ctx, admin, 5))
}

func TestAuthorService_ListAuthorBooks_AppliesAuthorRestriction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAuthors, mockBooks := newTestAuthorService(t, ctrl)
	ctx := context.Background()

	mockAuthors.EXPECT().GetAuthor(ctx, int64(5)).Return(models.Author{AuthorID: 5}, nil)
	mockBooks.EXPECT().ListBooks(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter models.BookFilter, _ models.PageParams) ([]models.Book, int64, error) {
			require.NotNil(t, filter.AuthorID)
			assert.Equal(t, int64(5), *filter.AuthorID)
			assert.Equal(t, "fantasy", filter.Genre)
			return nil, 0, nil
		},
	)

	_, _, err := svc.ListAuthorBooks(ctx, 5, models.BookFilter{Genre: "fantasy"}, models.DefaultPageParams())
	require.NoError(t, err)
}
