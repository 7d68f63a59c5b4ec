package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ybchat/database"
	"ybchat/friendship"
	"ybchat/middleware"
	"ybchat/models"
	"ybchat/relay"
	"ybchat/utils"
	"ybchat/websocket"
)

const testSecret = "test-secret"

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeUserStore) EmailTaken(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.UserSummary{}
	for _, u := range f.users {
		out = append(out, *u.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUserStore) SetProfilePic(_ context.Context, id, pic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.ProfilePic = pic
	}
	return nil
}

func (f *fakeUserStore) Exists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[id]
	return ok, nil
}

type fakeEdgeStore struct {
	mu    sync.Mutex
	edges map[string]map[string]models.FriendStatus
	order map[string][]string
	users *fakeUserStore
}

func newFakeEdgeStore(users *fakeUserStore) *fakeEdgeStore {
	return &fakeEdgeStore{
		edges: make(map[string]map[string]models.FriendStatus),
		order: make(map[string][]string),
		users: users,
	}
}

func (f *fakeEdgeStore) set(owner, friend string, status models.FriendStatus) {
	if f.edges[owner] == nil {
		f.edges[owner] = make(map[string]models.FriendStatus)
	}
	if _, ok := f.edges[owner][friend]; !ok {
		f.order[owner] = append(f.order[owner], friend)
	}
	f.edges[owner][friend] = status
}

func (f *fakeEdgeStore) Edge(_ context.Context, ownerID, friendID string) (models.FriendStatus, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.edges[ownerID][friendID]
	return status, ok, nil
}

func (f *fakeEdgeStore) InsertPair(_ context.Context, requesterID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set(requesterID, targetID, models.StatusPending)
	f.set(targetID, requesterID, models.StatusReceived)
	return nil
}

func (f *fakeEdgeStore) SetPairStatus(_ context.Context, userID, friendID string, status models.FriendStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set(userID, friendID, status)
	f.set(friendID, userID, status)
	return nil
}

func (f *fakeEdgeStore) ListEdges(ctx context.Context, ownerID string) ([]models.FriendEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := []models.FriendEntry{}
	for _, friendID := range f.order[ownerID] {
		entry := models.FriendEntry{Status: f.edges[ownerID][friendID]}
		if u, err := f.users.GetByID(ctx, friendID); err == nil {
			entry.Friend = *u.Summary()
		} else {
			entry.Friend = models.UserSummary{ID: friendID}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type fakeMessageStore struct {
	mu   sync.Mutex
	msgs []models.Message
}

func (f *fakeMessageStore) Insert(_ context.Context, m *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, *m)
	return nil
}

func (f *fakeMessageStore) History(_ context.Context, userA, userB string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Message{}
	for _, m := range f.msgs {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeMessageStore) MarkSeen(_ context.Context, viewerID, counterpartID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.msgs {
		if f.msgs[i].SenderID == counterpartID && f.msgs[i].ReceiverID == viewerID && !f.msgs[i].Seen {
			f.msgs[i].Seen = true
			n++
		}
	}
	return n, nil
}

type testEnv struct {
	router   *gin.Engine
	users    *fakeUserStore
	edges    *fakeEdgeStore
	messages *fakeMessageStore
	hub      *websocket.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := newFakeUserStore()
	edges := newFakeEdgeStore(users)
	messages := &fakeMessageStore{}

	hub := websocket.NewHub()
	messageRelay := relay.NewMessages(hub, messages)
	seen := relay.NewSeen(hub, messages)
	friends := friendship.NewService(edges, users)

	r := gin.New()

	authH := &AuthHandler{Users: users, JWTSecret: testSecret, Log: logger}
	auth := r.Group("/api/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.GET("/me", middleware.AuthMiddleware(testSecret), authH.Me)
	auth.GET("/all", authH.All)

	friendH := &FriendHandler{Friends: friends, Log: logger}
	fr := r.Group("/api/friends")
	fr.Use(middleware.AuthMiddleware(testSecret))
	fr.POST("/add/:friendId", friendH.Add)
	fr.POST("/accept/:friendId", friendH.Accept)
	fr.POST("/reject/:friendId", friendH.Reject)
	fr.GET("/list", friendH.List)

	messageH := &MessageHandler{Messages: messageRelay, Seen: seen, Log: logger}
	msgs := r.Group("/api/messages")
	msgs.Use(middleware.AuthMiddleware(testSecret))
	msgs.GET("/:friendId", messageH.History)
	msgs.POST("/seen/:friendId", messageH.MarkSeen)

	uploadH := &UploadHandler{Users: users, Log: logger}
	up := r.Group("/api/upload")
	up.Use(middleware.AuthMiddleware(testSecret))
	up.POST("/profile-pic", uploadH.ProfilePic)

	return &testEnv{router: r, users: users, edges: edges, messages: messages, hub: hub}
}

func (e *testEnv) addUser(t *testing.T, id, name, email string) {
	t.Helper()
	err := e.users.Create(context.Background(), &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("addUser: %v", err)
	}
}

func (e *testEnv) do(t *testing.T, method, path, asUser string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if asUser != "" {
		token, err := utils.GenerateToken(asUser, testSecret)
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
