package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/radityaqb/go-user-accounts/internal/domain/entity"
	repo "github.com/radityaqb/go-user-accounts/internal/domain/repository"
	"github.com/radityaqb/go-user-accounts/pkg/helpers"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already taken")
	ErrInvalidPassword = errors.New("invalid password")
	ErrOperationFailed = errors.New("operation failed")
)

// Service enforces the business rules above raw storage: email uniqueness,
// hash-then-store, and stripping password hashes from anything returned to
// callers. Pub and ES are optional collaborators; every use is nil-safe.
//
// The email uniqueness check is check-then-write without a unique
// constraint, so two concurrent creates can both pass it. Known limitation
// of this design, kept deliberately.
type Service struct {
	Repo         repo.UserRepository
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewService(repo repo.UserRepository, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esUsersIndex string) *Service {
	return &Service{
		Repo:         repo,
		Logger:       logger,
		Pub:          pub,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

// UserView is the caller-facing shape of a user. No password field exists
// here, so a hash cannot leak past the service boundary.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserEvent is published to the events queue on lifecycle changes.
type UserEvent struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	At     time.Time `json:"at"`
}

func view(u *entity.User) *UserView {
	return &UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s *Service) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, *view(u))
	}
	return out, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*UserView, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return view(u), nil
}

func (s *Service) CreateUser(ctx context.Context, name, email, password string) error {
	taken, err := s.IsEmailTaken(ctx, email)
	if err != nil {
		return ErrOperationFailed
	}
	if taken {
		return ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return ErrOperationFailed
	}

	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("create user failed")
		}
		return ErrOperationFailed
	}

	s.publish(ctx, "user.created", u)
	_ = s.indexUser(ctx, u)
	return nil
}

func (s *Service) UpdateUser(ctx context.Context, id, name, email string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ErrOperationFailed
	}
	if u == nil {
		return ErrUserNotFound
	}

	// The new email may belong to the user being updated; only a
	// different owner makes it taken.
	owner, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return ErrOperationFailed
	}
	if owner != nil && owner.ID != u.ID {
		return ErrEmailTaken
	}

	ok, err := s.Repo.Update(ctx, id, name, email)
	if err != nil || !ok {
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Error("update user failed")
		}
		return ErrOperationFailed
	}

	u.Name = name
	u.Email = email
	s.publish(ctx, "user.updated", u)
	_ = s.indexUser(ctx, u)
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ErrOperationFailed
	}
	if u == nil {
		return ErrUserNotFound
	}

	ok, err := s.Repo.Delete(ctx, id)
	if err != nil || !ok {
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Error("delete user failed")
		}
		return ErrOperationFailed
	}

	s.publish(ctx, "user.deleted", u)
	s.removeFromIndex(ctx, id)
	return nil
}

// ChangePassword hashes newPassword and replaces the stored hash. Hashing
// happens exactly once, here; the repository persists the hash verbatim.
func (s *Service) ChangePassword(ctx context.Context, id, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ErrOperationFailed
	}
	if u == nil {
		return ErrUserNotFound
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return ErrOperationFailed
	}
	ok, err := s.Repo.UpdatePassword(ctx, id, hash)
	if err != nil || !ok {
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Error("change password failed")
		}
		return ErrOperationFailed
	}

	s.publish(ctx, "user.password_changed", u)
	return nil
}

// IsValidPassword reports whether candidate matches the stored hash for id.
// Fails closed: unknown id, storage fault and hash mismatch all yield false.
func (s *Service) IsValidPassword(ctx context.Context, id, candidate string) bool {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return false
	}
	return helpers.CompareHashAndPassword(u.Password, candidate)
}

func (s *Service) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (s *Service) publish(ctx context.Context, eventType string, u *entity.User) {
	if s.Pub == nil {
		return
	}
	ev := UserEvent{Type: eventType, UserID: u.ID, Email: u.Email, At: time.Now().UTC()}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event", eventType).Warn("publish user event failed")
	}
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *Service) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
