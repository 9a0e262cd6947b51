package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"blogctl/internal/blog"
)

// RecordedRequest is what the fake API saw for one request.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	RequestID     string
}

type fakeUser struct {
	user     blog.User
	password string
}

type fakeComment struct {
	comment  blog.Comment
	postSlug string
	email    string
}

type override struct {
	status int
	body   any
}

// FakeAPI is an in-memory implementation of the blog REST API for tests.
// Routes live under /v1 and follow the envelopes of the real server.
type FakeAPI struct {
	server *httptest.Server

	mu         sync.Mutex
	nextID     int
	users      []*fakeUser
	tokens     map[string]string // token -> user id
	posts      []*blog.Post
	categories []*blog.Category
	tags       []*blog.Tag
	media      []gin.H // stored in the legacy field shape
	comments   []*fakeComment
	rejects    map[string]string // upload filename -> reason
	overrides  map[string]override
	requests   []RecordedRequest
}

// NewFakeAPI starts a fake API server that is shut down when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{
		tokens:    make(map[string]string),
		rejects:   make(map[string]string),
		overrides: make(map[string]override),
	}

	r := gin.New()
	r.Use(f.record, f.applyOverride)
	f.routes(r.Group("/v1"))

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

// URL is the API root to hand to apiclient.New.
func (f *FakeAPI) URL() string { return f.server.URL }

// AddUser registers a user that can log in with email/password.
func (f *FakeAPI) AddUser(email, password string, role blog.Role) blog.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := blog.User{
		ID:        f.newID("user"),
		Email:     email,
		Name:      strings.Split(email, "@")[0],
		Role:      role,
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
	}
	f.users = append(f.users, &fakeUser{user: u, password: password})
	return u
}

// IssueToken creates a valid bearer token for the user.
func (f *FakeAPI) IssueToken(userID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueToken(userID)
}

// AcceptToken makes an externally minted token (e.g. a signed JWT) valid
// for the user.
func (f *FakeAPI) AcceptToken(token, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = userID
}

// RevokeToken makes token invalid; later requests with it get 401.
func (f *FakeAPI) RevokeToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

// AddPost stores a post as-is, assigning an ID when missing.
func (f *FakeAPI) AddPost(p blog.Post) blog.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = f.newID("post")
	}
	f.posts = append(f.posts, &p)
	return p
}

// AddCategory stores a category, assigning an ID when missing.
func (f *FakeAPI) AddCategory(c blog.Category) blog.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = f.newID("cat")
	}
	f.categories = append(f.categories, &c)
	return c
}

// AddMediaRaw stores a media record exactly as given, so tests can feed
// legacy field names through the client.
func (f *FakeAPI) AddMediaRaw(m map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.media = append(f.media, gin.H(m))
}

// AddComment stores a comment on the post with the given slug.
func (f *FakeAPI) AddComment(postSlug string, c blog.Comment) blog.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = f.newID("comment")
	}
	if c.Status == "" {
		c.Status = blog.CommentPending
	}
	f.comments = append(f.comments, &fakeComment{comment: c, postSlug: postSlug})
	return c
}

// RejectUpload makes the server refuse files with this name in batch uploads.
func (f *FakeAPI) RejectUpload(filename, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejects[filename] = reason
}

// Override makes every request to "METHOD /path" answer with status and body.
func (f *FakeAPI) Override(method, path string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[method+" "+path] = override{status: status, body: body}
}

// Requests returns the requests seen so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request.
func (f *FakeAPI) LastRequest() RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

var fixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func (f *FakeAPI) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *FakeAPI) issueToken(userID string) string {
	token := f.newID("token")
	f.tokens[token] = userID
	return token
}

func (f *FakeAPI) record(c *gin.Context) {
	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Query:         c.Request.URL.RawQuery,
		Authorization: c.GetHeader("Authorization"),
		ContentType:   c.ContentType(),
		RequestID:     c.GetHeader("X-Request-ID"),
	})
	f.mu.Unlock()
	c.Next()
}

func (f *FakeAPI) applyOverride(c *gin.Context) {
	f.mu.Lock()
	o, ok := f.overrides[c.Request.Method+" "+c.Request.URL.Path]
	f.mu.Unlock()
	if !ok {
		c.Next()
		return
	}
	if o.body == nil {
		c.AbortWithStatus(o.status)
		return
	}
	if s, isString := o.body.(string); isString {
		c.Data(o.status, "text/plain", []byte(s))
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(o.status, o.body)
}

func apiError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"message": msg}})
}

// requireAuth resolves the bearer token into the current user.
func (f *FakeAPI) requireAuth(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	f.mu.Lock()
	userID, ok := f.tokens[token]
	f.mu.Unlock()
	if token == "" || !ok {
		apiError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	c.Set("userID", userID)
	c.Next()
}

func (f *FakeAPI) routes(v1 *gin.RouterGroup) {
	auth := f.requireAuth

	v1.POST("/auth/login", f.login)
	v1.GET("/auth/me", auth, f.me)

	v1.GET("/posts", f.listPosts)
	v1.GET("/posts/id/:id", auth, f.getPostByID)
	v1.GET("/posts/:slug", f.getPostBySlug)
	v1.POST("/posts", auth, f.createPost)
	v1.PUT("/posts/:id", auth, f.updatePost)
	v1.DELETE("/posts/:id", auth, f.deletePost)

	v1.GET("/posts/:slug/comments", f.listPostComments)
	v1.POST("/posts/:slug/comments", f.createComment)
	v1.GET("/comments", auth, f.listComments)
	v1.PATCH("/comments/:id/status", auth, f.updateCommentStatus)
	v1.DELETE("/comments/:id", auth, f.deleteComment)

	f.termRoutes(v1, "/categories", &categoryTerms{f})
	f.termRoutes(v1, "/tags", &tagTerms{f})

	v1.GET("/users", auth, f.listUsers)
	v1.GET("/users/:id", auth, f.getUser)
	v1.POST("/users", auth, f.createUser)
	v1.PUT("/users/:id", auth, f.updateUser)
	v1.DELETE("/users/:id", auth, f.deleteUser)

	v1.GET("/media", auth, f.listMedia)
	v1.GET("/media/:id", auth, f.getMedia)
	v1.POST("/media/upload", auth, f.uploadMedia)
	v1.POST("/media/upload-multiple", auth, f.uploadMultipleMedia)
	v1.DELETE("/media/:id", auth, f.deleteMedia)
}

// paginate slices items per the page/limit query and writes the list envelope.
func paginate[T any](c *gin.Context, items []T) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	data := append(make([]T, 0, end-start), items[start:end]...)
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + limit - 1) / limit,
		},
	})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Auth

func (f *FakeAPI) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.user.Email == body.Email && u.password == body.Password {
			token := f.issueToken(u.user.ID)
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"token": token, "user": u.user}})
			return
		}
	}
	apiError(c, http.StatusUnauthorized, "Invalid email or password")
}

func (f *FakeAPI) me(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u := f.findUser(c.GetString("userID")); u != nil {
		c.JSON(http.StatusOK, gin.H{"data": u.user})
		return
	}
	apiError(c, http.StatusUnauthorized, "Unauthorized")
}

func (f *FakeAPI) findUser(id string) *fakeUser {
	for _, u := range f.users {
		if u.user.ID == id {
			return u
		}
	}
	return nil
}

// Posts

func (f *FakeAPI) listPosts(c *gin.Context) {
	status := c.Query("status")
	search := c.Query("search")
	category := c.Query("category")
	tag := c.Query("tag")

	f.mu.Lock()
	var out []blog.Post
	for _, p := range f.posts {
		if status != "" && string(p.Status) != status {
			continue
		}
		if search != "" && !containsFold(p.Title, search) && !containsFold(p.Content, search) {
			continue
		}
		if category != "" && !hasTerm(p.Categories, category) {
			continue
		}
		if tag != "" && !hasTerm(p.Tags, tag) {
			continue
		}
		out = append(out, *p)
	}
	f.mu.Unlock()
	paginate(c, out)
}

func hasTerm(refs []blog.TermRef, slug string) bool {
	for _, r := range refs {
		if r.Slug == slug {
			return true
		}
	}
	return false
}

func (f *FakeAPI) findPost(match func(*blog.Post) bool) (int, *blog.Post) {
	for i, p := range f.posts {
		if match(p) {
			return i, p
		}
	}
	return -1, nil
}

func (f *FakeAPI) getPostByID(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := c.Param("id")
	if _, p := f.findPost(func(p *blog.Post) bool { return p.ID == id }); p != nil {
		c.JSON(http.StatusOK, gin.H{"data": p})
		return
	}
	apiError(c, http.StatusNotFound, "Post not found")
}

func (f *FakeAPI) getPostBySlug(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slug := c.Param("slug")
	if _, p := f.findPost(func(p *blog.Post) bool { return p.Slug == slug }); p != nil {
		c.JSON(http.StatusOK, gin.H{"data": p})
		return
	}
	apiError(c, http.StatusNotFound, "Post not found")
}

func (f *FakeAPI) createPost(c *gin.Context) {
	var in blog.PostCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Title == "" || in.Content == "" {
		apiError(c, http.StatusBadRequest, "Title and content are required")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.findPost(func(p *blog.Post) bool { return p.Slug == in.Slug }); dup != nil {
		apiError(c, http.StatusConflict, "Slug already exists")
		return
	}
	status := in.Status
	if status == "" {
		status = blog.PostDraft
	}
	p := &blog.Post{
		ID:        f.newID("post"),
		Title:     in.Title,
		Slug:      in.Slug,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Status:    status,
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
	}
	if u := f.findUser(c.GetString("userID")); u != nil {
		p.Author = blog.AuthorRef{ID: u.user.ID, Name: u.user.Name, Email: u.user.Email}
	}
	for _, id := range in.CategoryIDs {
		for _, cat := range f.categories {
			if cat.ID == id {
				p.Categories = append(p.Categories, blog.TermRef{ID: cat.ID, Name: cat.Name, Slug: cat.Slug})
			}
		}
	}
	f.posts = append(f.posts, p)
	c.JSON(http.StatusCreated, gin.H{"data": p})
}

func (f *FakeAPI) updatePost(c *gin.Context) {
	var in blog.PostUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := c.Param("id")
	_, p := f.findPost(func(p *blog.Post) bool { return p.ID == id })
	if p == nil {
		apiError(c, http.StatusNotFound, "Post not found")
		return
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (f *FakeAPI) deletePost(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := c.Param("id")
	i, p := f.findPost(func(p *blog.Post) bool { return p.ID == id })
	if p == nil {
		apiError(c, http.StatusNotFound, "Post not found")
		return
	}
	f.posts = append(f.posts[:i], f.posts[i+1:]...)
	c.Status(http.StatusNoContent)
}

// Comments

func (f *FakeAPI) listPostComments(c *gin.Context) {
	slug := c.Param("slug")
	f.mu.Lock()
	var out []blog.Comment
	for _, fc := range f.comments {
		if fc.postSlug == slug && fc.comment.Status == blog.CommentApproved {
			public := fc.comment
			public.Status = ""
			public.Post = nil
			out = append(out, public)
		}
	}
	f.mu.Unlock()
	paginate(c, out)
}

func (f *FakeAPI) createComment(c *gin.Context) {
	var in blog.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Content == "" || in.AuthorName == "" || in.AuthorEmail == "" {
		apiError(c, http.StatusBadRequest, "Content, name and email are required")
		return
	}
	slug := c.Param("slug")
	f.mu.Lock()
	defer f.mu.Unlock()
	_, p := f.findPost(func(p *blog.Post) bool { return p.Slug == slug })
	if p == nil {
		apiError(c, http.StatusNotFound, "Post not found")
		return
	}
	cm := blog.Comment{
		ID:         f.newID("comment"),
		Content:    in.Content,
		AuthorName: in.AuthorName,
		AuthorURL:  in.AuthorURL,
		ParentID:   in.ParentID,
		CreatedAt:  fixedTime,
		Status:     blog.CommentPending,
		Post:       &blog.PostRef{ID: p.ID, Title: p.Title, Slug: p.Slug},
	}
	f.comments = append(f.comments, &fakeComment{comment: cm, postSlug: slug, email: in.AuthorEmail})
	c.JSON(http.StatusCreated, gin.H{"data": cm})
}

func (f *FakeAPI) listComments(c *gin.Context) {
	status := c.Query("status")
	postID := c.Query("postId")
	f.mu.Lock()
	var out []blog.Comment
	for _, fc := range f.comments {
		if status != "" && string(fc.comment.Status) != status {
			continue
		}
		if postID != "" && (fc.comment.Post == nil || fc.comment.Post.ID != postID) {
			continue
		}
		out = append(out, fc.comment)
	}
	f.mu.Unlock()
	paginate(c, out)
}

func (f *FakeAPI) findComment(id string) (int, *fakeComment) {
	for i, fc := range f.comments {
		if fc.comment.ID == id {
			return i, fc
		}
	}
	return -1, nil
}

func (f *FakeAPI) updateCommentStatus(c *gin.Context) {
	var body struct {
		Status blog.CommentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !body.Status.Valid() {
		apiError(c, http.StatusBadRequest, "Invalid status")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, fc := f.findComment(c.Param("id"))
	if fc == nil {
		apiError(c, http.StatusNotFound, "Comment not found")
		return
	}
	fc.comment.Status = body.Status
	c.JSON(http.StatusOK, gin.H{"data": fc.comment})
}

func (f *FakeAPI) deleteComment(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, fc := f.findComment(c.Param("id"))
	if fc == nil {
		apiError(c, http.StatusNotFound, "Comment not found")
		return
	}
	f.comments = append(f.comments[:i], f.comments[i+1:]...)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": fc.comment.ID}})
}

// Categories and tags share one route table.

type term struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type termStore interface {
	all() []term
	add(t term)
	set(t term) bool
	remove(id string) bool
}

type categoryTerms struct{ f *FakeAPI }

func (s *categoryTerms) all() []term {
	out := make([]term, 0, len(s.f.categories))
	for _, c := range s.f.categories {
		out = append(out, term(*c))
	}
	return out
}

func (s *categoryTerms) add(t term) {
	c := blog.Category(t)
	s.f.categories = append(s.f.categories, &c)
}

func (s *categoryTerms) set(t term) bool {
	for _, c := range s.f.categories {
		if c.ID == t.ID {
			*c = blog.Category(t)
			return true
		}
	}
	return false
}

func (s *categoryTerms) remove(id string) bool {
	for i, c := range s.f.categories {
		if c.ID == id {
			s.f.categories = append(s.f.categories[:i], s.f.categories[i+1:]...)
			return true
		}
	}
	return false
}

type tagTerms struct{ f *FakeAPI }

func (s *tagTerms) all() []term {
	out := make([]term, 0, len(s.f.tags))
	for _, t := range s.f.tags {
		out = append(out, term(*t))
	}
	return out
}

func (s *tagTerms) add(t term) {
	tg := blog.Tag(t)
	s.f.tags = append(s.f.tags, &tg)
}

func (s *tagTerms) set(t term) bool {
	for _, tg := range s.f.tags {
		if tg.ID == t.ID {
			*tg = blog.Tag(t)
			return true
		}
	}
	return false
}

func (s *tagTerms) remove(id string) bool {
	for i, tg := range s.f.tags {
		if tg.ID == id {
			s.f.tags = append(s.f.tags[:i], s.f.tags[i+1:]...)
			return true
		}
	}
	return false
}

func (f *FakeAPI) termRoutes(v1 *gin.RouterGroup, prefix string, store termStore) {
	auth := f.requireAuth

	find := func(match func(term) bool) (term, bool) {
		for _, t := range store.all() {
			if match(t) {
				return t, true
			}
		}
		return term{}, false
	}

	v1.GET(prefix, func(c *gin.Context) {
		search := c.Query("search")
		f.mu.Lock()
		var out []term
		for _, t := range store.all() {
			if search == "" || containsFold(t.Name, search) {
				out = append(out, t)
			}
		}
		f.mu.Unlock()
		paginate(c, out)
	})

	v1.GET(prefix+"/id/:id", auth, func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if t, ok := find(func(t term) bool { return t.ID == c.Param("id") }); ok {
			c.JSON(http.StatusOK, gin.H{"data": t})
			return
		}
		apiError(c, http.StatusNotFound, "Not found")
	})

	v1.GET(prefix+"/:slug", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if t, ok := find(func(t term) bool { return t.Slug == c.Param("slug") }); ok {
			c.JSON(http.StatusOK, gin.H{"data": t})
			return
		}
		apiError(c, http.StatusNotFound, "Not found")
	})

	v1.POST(prefix, auth, func(c *gin.Context) {
		var in blog.TermInput
		if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
			apiError(c, http.StatusBadRequest, "Name is required")
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, dup := find(func(t term) bool { return t.Slug == in.Slug }); dup {
			apiError(c, http.StatusConflict, "Slug already exists")
			return
		}
		t := term{ID: f.newID("term"), Name: in.Name, Slug: in.Slug, Description: in.Description, CreatedAt: fixedTime}
		store.add(t)
		c.JSON(http.StatusCreated, gin.H{"data": t})
	})

	v1.PUT(prefix+"/:id", auth, func(c *gin.Context) {
		var in blog.TermUpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			apiError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		t, ok := find(func(t term) bool { return t.ID == c.Param("id") })
		if !ok {
			apiError(c, http.StatusNotFound, "Not found")
			return
		}
		if in.Name != nil {
			t.Name = *in.Name
		}
		if in.Slug != nil {
			t.Slug = *in.Slug
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		store.set(t)
		c.JSON(http.StatusOK, gin.H{"data": t})
	})

	v1.DELETE(prefix+"/:id", auth, func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !store.remove(c.Param("id")) {
			apiError(c, http.StatusNotFound, "Not found")
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// Users

func (f *FakeAPI) listUsers(c *gin.Context) {
	f.mu.Lock()
	out := make([]blog.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u.user)
	}
	f.mu.Unlock()
	paginate(c, out)
}

func (f *FakeAPI) getUser(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u := f.findUser(c.Param("id")); u != nil {
		c.JSON(http.StatusOK, gin.H{"data": u.user})
		return
	}
	apiError(c, http.StatusNotFound, "User not found")
}

func (f *FakeAPI) createUser(c *gin.Context) {
	var in blog.UserCreateInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		apiError(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	role := in.Role
	if role == "" {
		role = blog.RoleAuthor
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := blog.User{ID: f.newID("user"), Email: in.Email, Name: in.Name, Role: role, CreatedAt: fixedTime, UpdatedAt: fixedTime}
	f.users = append(f.users, &fakeUser{user: u, password: in.Password})
	c.JSON(http.StatusCreated, gin.H{"data": u})
}

func (f *FakeAPI) updateUser(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, ok := raw["email"]; ok {
		apiError(c, http.StatusBadRequest, "Email cannot be changed")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.findUser(c.Param("id"))
	if u == nil {
		apiError(c, http.StatusNotFound, "User not found")
		return
	}
	if v, ok := raw["name"].(string); ok {
		u.user.Name = v
	}
	if v, ok := raw["role"].(string); ok {
		u.user.Role = blog.Role(v)
	}
	if v, ok := raw["bio"].(string); ok {
		u.user.Bio = v
	}
	if v, ok := raw["avatar"].(string); ok {
		u.user.Avatar = v
	}
	c.JSON(http.StatusOK, gin.H{"data": u.user})
}

func (f *FakeAPI) deleteUser(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.users {
		if u.user.ID == c.Param("id") {
			f.users = append(f.users[:i], f.users[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	apiError(c, http.StatusNotFound, "User not found")
}

// Media is stored and served in the legacy field shape.

func (f *FakeAPI) listMedia(c *gin.Context) {
	f.mu.Lock()
	out := append([]gin.H(nil), f.media...)
	f.mu.Unlock()
	paginate(c, out)
}

func (f *FakeAPI) getMedia(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.media {
		if m["id"] == c.Param("id") {
			c.JSON(http.StatusOK, gin.H{"data": m})
			return
		}
	}
	apiError(c, http.StatusNotFound, "Media not found")
}

func (f *FakeAPI) storeUpload(name, contentType string, size int64) gin.H {
	id := f.newID("media")
	m := gin.H{
		"id":          id,
		"filename":    id + "-" + name,
		"fileName":    name,
		"mimeType":    contentType,
		"fileSize":    size,
		"originalUrl": "https://cdn.example.com/" + id + "/" + name,
	}
	f.media = append(f.media, m)
	return m
}

func (f *FakeAPI) uploadMedia(c *gin.Context) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		apiError(c, http.StatusBadRequest, "Expected multipart/form-data")
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		apiError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.storeUpload(fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
	c.JSON(http.StatusCreated, gin.H{"data": m})
}

func (f *FakeAPI) uploadMultipleMedia(c *gin.Context) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		apiError(c, http.StatusBadRequest, "Expected multipart/form-data")
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		apiError(c, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		apiError(c, http.StatusBadRequest, "No files uploaded")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	uploads := []gin.H{}
	failed := []gin.H{}
	for _, fh := range files {
		if reason, rejected := f.rejects[fh.Filename]; rejected {
			failed = append(failed, gin.H{"fileName": fh.Filename, "error": reason})
			continue
		}
		src, err := fh.Open()
		if err != nil {
			failed = append(failed, gin.H{"fileName": fh.Filename, "error": err.Error()})
			continue
		}
		n, _ := io.Copy(io.Discard, src)
		src.Close()
		uploads = append(uploads, f.storeUpload(fh.Filename, fh.Header.Get("Content-Type"), n))
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"uploads":     uploads,
		"failed":      failed,
		"total":       len(files),
		"successful":  len(uploads),
		"failedCount": len(failed),
	}})
}

func (f *FakeAPI) deleteMedia(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.media {
		if m["id"] == c.Param("id") {
			f.media = append(f.media[:i], f.media[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	apiError(c, http.StatusNotFound, "Media not found")
}
