package service

import (
	"context"

	"filmorate/internal/models"
)

type userRepoStub struct {
	createFn  func(context.Context, *models.User) (*models.User, error)
	updateFn  func(context.Context, *models.User) (*models.User, error)
	getByIDFn func(context.Context, int64) (*models.User, error)
	listFn    func(context.Context) ([]models.User, error)
	deleteFn  func(context.Context, int64) error
	existsFn  func(context.Context, int64) (bool, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) (*models.User, error) {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) { return s.listFn(ctx) }
func (s *userRepoStub) Delete(ctx context.Context, id int64) error      { return s.deleteFn(ctx, id) }
func (s *userRepoStub) Exists(ctx context.Context, id int64) (bool, error) {
	return s.existsFn(ctx, id)
}

// noopUserRepo knows every positive user id.
func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) (*models.User, error) {
			out := *u
			out.ID = 1
			return &out, nil
		},
		updateFn:  func(_ context.Context, u *models.User) (*models.User, error) { return u, nil },
		getByIDFn: func(_ context.Context, id int64) (*models.User, error) { return &models.User{ID: id}, nil },
		listFn:    func(context.Context) ([]models.User, error) { return nil, nil },
		deleteFn:  func(context.Context, int64) error { return nil },
		existsFn:  func(_ context.Context, id int64) (bool, error) { return id > 0, nil },
	}
}

type friendRepoStub struct {
	addFn           func(context.Context, int64, int64) error
	removeFn        func(context.Context, int64, int64) (bool, error)
	friendsFn       func(context.Context, int64) ([]models.User, error)
	commonFriendsFn func(context.Context, int64, int64) ([]models.User, error)
}

func (s *friendRepoStub) Add(ctx context.Context, userID, friendID int64) error {
	return s.addFn(ctx, userID, friendID)
}
func (s *friendRepoStub) Remove(ctx context.Context, userID, friendID int64) (bool, error) {
	return s.removeFn(ctx, userID, friendID)
}
func (s *friendRepoStub) Friends(ctx context.Context, userID int64) ([]models.User, error) {
	return s.friendsFn(ctx, userID)
}
func (s *friendRepoStub) CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	return s.commonFriendsFn(ctx, userID, otherID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		addFn:           func(context.Context, int64, int64) error { return nil },
		removeFn:        func(context.Context, int64, int64) (bool, error) { return true, nil },
		friendsFn:       func(context.Context, int64) ([]models.User, error) { return nil, nil },
		commonFriendsFn: func(context.Context, int64, int64) ([]models.User, error) { return nil, nil },
	}
}

type filmRepoStub struct {
	createFn     func(context.Context, *models.Film) (*models.Film, error)
	updateFn     func(context.Context, *models.Film) (*models.Film, error)
	getByIDFn    func(context.Context, int64) (*models.Film, error)
	listFn       func(context.Context) ([]models.Film, error)
	deleteFn     func(context.Context, int64) error
	existsFn     func(context.Context, int64) (bool, error)
	popularFn    func(context.Context, models.PopularFilter) ([]models.Film, error)
	searchFn     func(context.Context, string, bool, bool) ([]models.Film, error)
	byDirectorFn func(context.Context, int64, models.FilmSort) ([]models.Film, error)
	commonFn     func(context.Context, int64, int64) ([]models.Film, error)
	likedByFn    func(context.Context, int64) ([]models.Film, error)
}

func (s *filmRepoStub) Create(ctx context.Context, f *models.Film) (*models.Film, error) {
	return s.createFn(ctx, f)
}
func (s *filmRepoStub) Update(ctx context.Context, f *models.Film) (*models.Film, error) {
	return s.updateFn(ctx, f)
}
func (s *filmRepoStub) GetByID(ctx context.Context, id int64) (*models.Film, error) {
	return s.getByIDFn(ctx, id)
}
func (s *filmRepoStub) List(ctx context.Context) ([]models.Film, error) { return s.listFn(ctx) }
func (s *filmRepoStub) Delete(ctx context.Context, id int64) error      { return s.deleteFn(ctx, id) }
func (s *filmRepoStub) Exists(ctx context.Context, id int64) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *filmRepoStub) Popular(ctx context.Context, filter models.PopularFilter) ([]models.Film, error) {
	return s.popularFn(ctx, filter)
}
func (s *filmRepoStub) Search(ctx context.Context, term string, byTitle, byDirector bool) ([]models.Film, error) {
	return s.searchFn(ctx, term, byTitle, byDirector)
}
func (s *filmRepoStub) ByDirector(ctx context.Context, directorID int64, sortBy models.FilmSort) ([]models.Film, error) {
	return s.byDirectorFn(ctx, directorID, sortBy)
}
func (s *filmRepoStub) Common(ctx context.Context, userID, friendID int64) ([]models.Film, error) {
	return s.commonFn(ctx, userID, friendID)
}
func (s *filmRepoStub) LikedBy(ctx context.Context, userID int64) ([]models.Film, error) {
	return s.likedByFn(ctx, userID)
}

// noopFilmRepo knows every positive film id.
func noopFilmRepo() *filmRepoStub {
	return &filmRepoStub{
		createFn: func(_ context.Context, f *models.Film) (*models.Film, error) {
			out := *f
			out.ID = 1
			return &out, nil
		},
		updateFn:     func(_ context.Context, f *models.Film) (*models.Film, error) { return f, nil },
		getByIDFn:    func(_ context.Context, id int64) (*models.Film, error) { return &models.Film{ID: id}, nil },
		listFn:       func(context.Context) ([]models.Film, error) { return nil, nil },
		deleteFn:     func(context.Context, int64) error { return nil },
		existsFn:     func(_ context.Context, id int64) (bool, error) { return id > 0, nil },
		popularFn:    func(context.Context, models.PopularFilter) ([]models.Film, error) { return nil, nil },
		searchFn:     func(context.Context, string, bool, bool) ([]models.Film, error) { return nil, nil },
		byDirectorFn: func(context.Context, int64, models.FilmSort) ([]models.Film, error) { return nil, nil },
		commonFn:     func(context.Context, int64, int64) ([]models.Film, error) { return nil, nil },
		likedByFn:    func(context.Context, int64) ([]models.Film, error) { return nil, nil },
	}
}

type likeRepoStub struct {
	addFn             func(context.Context, int64, int64) error
	removeFn          func(context.Context, int64, int64) (bool, error)
	filmIDsLikedByFn  func(context.Context, int64) ([]int64, error)
	mostSimilarUserFn func(context.Context, int64) (int64, bool, error)
}

func (s *likeRepoStub) Add(ctx context.Context, filmID, userID int64) error {
	return s.addFn(ctx, filmID, userID)
}
func (s *likeRepoStub) Remove(ctx context.Context, filmID, userID int64) (bool, error) {
	return s.removeFn(ctx, filmID, userID)
}
func (s *likeRepoStub) FilmIDsLikedBy(ctx context.Context, userID int64) ([]int64, error) {
	return s.filmIDsLikedByFn(ctx, userID)
}
func (s *likeRepoStub) MostSimilarUser(ctx context.Context, userID int64) (int64, bool, error) {
	return s.mostSimilarUserFn(ctx, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		addFn:             func(context.Context, int64, int64) error { return nil },
		removeFn:          func(context.Context, int64, int64) (bool, error) { return true, nil },
		filmIDsLikedByFn:  func(context.Context, int64) ([]int64, error) { return nil, nil },
		mostSimilarUserFn: func(context.Context, int64) (int64, bool, error) { return 0, false, nil },
	}
}

type mpaRepoStub struct {
	getByIDFn func(context.Context, int64) (*models.Mpa, error)
	listFn    func(context.Context) ([]models.Mpa, error)
}

func (s *mpaRepoStub) GetByID(ctx context.Context, id int64) (*models.Mpa, error) {
	return s.getByIDFn(ctx, id)
}
func (s *mpaRepoStub) List(ctx context.Context) ([]models.Mpa, error) { return s.listFn(ctx) }

// noopMpaRepo knows ratings 1 to 5.
func noopMpaRepo() *mpaRepoStub {
	return &mpaRepoStub{
		getByIDFn: func(_ context.Context, id int64) (*models.Mpa, error) {
			if id < 1 || id > 5 {
				return nil, models.NewNotFoundError("Mpa", id)
			}
			return &models.Mpa{ID: id}, nil
		},
		listFn: func(context.Context) ([]models.Mpa, error) { return nil, nil },
	}
}

type genreRepoStub struct {
	getByIDFn     func(context.Context, int64) (*models.Genre, error)
	listFn        func(context.Context) ([]models.Genre, error)
	existingIDsFn func(context.Context, []int64) ([]int64, error)
}

func (s *genreRepoStub) GetByID(ctx context.Context, id int64) (*models.Genre, error) {
	return s.getByIDFn(ctx, id)
}
func (s *genreRepoStub) List(ctx context.Context) ([]models.Genre, error) { return s.listFn(ctx) }
func (s *genreRepoStub) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return s.existingIDsFn(ctx, ids)
}

// noopGenreRepo knows genres 1 to 6.
func noopGenreRepo() *genreRepoStub {
	return &genreRepoStub{
		getByIDFn: func(_ context.Context, id int64) (*models.Genre, error) { return &models.Genre{ID: id}, nil },
		listFn:    func(context.Context) ([]models.Genre, error) { return nil, nil },
		existingIDsFn: func(_ context.Context, ids []int64) ([]int64, error) {
			return knownIDs(ids, 6), nil
		},
	}
}

type directorRepoStub struct {
	createFn      func(context.Context, *models.Director) (*models.Director, error)
	updateFn      func(context.Context, *models.Director) (*models.Director, error)
	getByIDFn     func(context.Context, int64) (*models.Director, error)
	listFn        func(context.Context) ([]models.Director, error)
	deleteFn      func(context.Context, int64) error
	existingIDsFn func(context.Context, []int64) ([]int64, error)
}

func (s *directorRepoStub) Create(ctx context.Context, d *models.Director) (*models.Director, error) {
	return s.createFn(ctx, d)
}
func (s *directorRepoStub) Update(ctx context.Context, d *models.Director) (*models.Director, error) {
	return s.updateFn(ctx, d)
}
func (s *directorRepoStub) GetByID(ctx context.Context, id int64) (*models.Director, error) {
	return s.getByIDFn(ctx, id)
}
func (s *directorRepoStub) List(ctx context.Context) ([]models.Director, error) { return s.listFn(ctx) }
func (s *directorRepoStub) Delete(ctx context.Context, id int64) error          { return s.deleteFn(ctx, id) }
func (s *directorRepoStub) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return s.existingIDsFn(ctx, ids)
}

// noopDirectorRepo knows directors 1 to 3.
func noopDirectorRepo() *directorRepoStub {
	return &directorRepoStub{
		createFn: func(_ context.Context, d *models.Director) (*models.Director, error) { return d, nil },
		updateFn: func(_ context.Context, d *models.Director) (*models.Director, error) { return d, nil },
		getByIDFn: func(_ context.Context, id int64) (*models.Director, error) {
			if id < 1 || id > 3 {
				return nil, models.NewNotFoundError("Director", id)
			}
			return &models.Director{ID: id}, nil
		},
		listFn:   func(context.Context) ([]models.Director, error) { return nil, nil },
		deleteFn: func(context.Context, int64) error { return nil },
		existingIDsFn: func(_ context.Context, ids []int64) ([]int64, error) {
			return knownIDs(ids, 3), nil
		},
	}
}

func knownIDs(ids []int64, max int64) []int64 {
	var out []int64
	for _, id := range ids {
		if id >= 1 && id <= max {
			out = append(out, id)
		}
	}
	return out
}

type reviewRepoStub struct {
	createFn     func(context.Context, *models.Review) (*models.Review, error)
	updateFn     func(context.Context, *models.Review) (*models.Review, error)
	getByIDFn    func(context.Context, int64) (*models.Review, error)
	listFn       func(context.Context, *int64, int) ([]models.Review, error)
	deleteFn     func(context.Context, int64) error
	addVoteFn    func(context.Context, int64, int64, bool) (*models.Review, error)
	removeVoteFn func(context.Context, int64, int64, bool) (*models.Review, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	return s.createFn(ctx, r)
}
func (s *reviewRepoStub) Update(ctx context.Context, r *models.Review) (*models.Review, error) {
	return s.updateFn(ctx, r)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) List(ctx context.Context, filmID *int64, count int) ([]models.Review, error) {
	return s.listFn(ctx, filmID, count)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id int64) error { return s.deleteFn(ctx, id) }
func (s *reviewRepoStub) AddVote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error) {
	return s.addVoteFn(ctx, reviewID, userID, isLike)
}
func (s *reviewRepoStub) RemoveVote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error) {
	return s.removeVoteFn(ctx, reviewID, userID, isLike)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn: func(_ context.Context, r *models.Review) (*models.Review, error) {
			out := *r
			out.ID = 1
			return &out, nil
		},
		updateFn:     func(_ context.Context, r *models.Review) (*models.Review, error) { return r, nil },
		getByIDFn:    func(_ context.Context, id int64) (*models.Review, error) { return &models.Review{ID: id}, nil },
		listFn:       func(context.Context, *int64, int) ([]models.Review, error) { return nil, nil },
		deleteFn:     func(context.Context, int64) error { return nil },
		addVoteFn:    func(_ context.Context, id, _ int64, _ bool) (*models.Review, error) { return &models.Review{ID: id}, nil },
		removeVoteFn: func(_ context.Context, id, _ int64, _ bool) (*models.Review, error) { return &models.Review{ID: id}, nil },
	}
}

// eventRecorder is an in-memory EventRepository and EventPublisher.
type eventRecorder struct {
	events     []models.Event
	published  []models.Event
	publishErr error
}

func (r *eventRecorder) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	out := *e
	out.ID = int64(len(r.events) + 1)
	out.Timestamp = 1700000000000 + out.ID
	r.events = append(r.events, out)
	return &out, nil
}

func (r *eventRecorder) ForUser(_ context.Context, userID int64) ([]models.Event, error) {
	var out []models.Event
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *eventRecorder) PublishEvent(_ context.Context, e *models.Event) error {
	if r.publishErr != nil {
		return r.publishErr
	}
	r.published = append(r.published, *e)
	return nil
}

func newFeed(users *userRepoStub) (*FeedService, *eventRecorder) {
	rec := &eventRecorder{}
	return NewFeedService(rec, users, rec), rec
}
