package blog

import (
	"io"
	"time"
)

// PostStatus drives public visibility of a post.
type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
	PostScheduled PostStatus = "SCHEDULED"
	PostArchived  PostStatus = "ARCHIVED"
)

// CommentStatus is the moderation state of a comment. Public creation always
// starts at CommentPending.
type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECTED"
)

// Valid reports whether s is one of the known moderation states.
func (s CommentStatus) Valid() bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

// AuthorRef is the embedded author summary on posts and media.
type AuthorRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TermRef is the embedded category or tag summary on a post.
type TermRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage"`
	Status      PostStatus `json:"status"`
	ReadingTime int        `json:"readingTime"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Author      AuthorRef  `json:"author"`
	Categories  []TermRef  `json:"categories"`
	Tags        []TermRef  `json:"tags"`
}

// PostCreateInput is the body of POST /posts.
type PostCreateInput struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Status      PostStatus `json:"status,omitempty"`
	CategoryIDs []string   `json:"categoryIds,omitempty"`
	TagIDs      []string   `json:"tagIds,omitempty"`
}

// PostUpdateInput is the body of PUT /posts/{id}. Nil fields are not sent.
type PostUpdateInput struct {
	Title       *string     `json:"title,omitempty"`
	Slug        *string     `json:"slug,omitempty"`
	Excerpt     *string     `json:"excerpt,omitempty"`
	Content     *string     `json:"content,omitempty"`
	CoverImage  *string     `json:"coverImage,omitempty"`
	Status      *PostStatus `json:"status,omitempty"`
	CategoryIDs *[]string   `json:"categoryIds,omitempty"`
	TagIDs      *[]string   `json:"tagIds,omitempty"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TermInput creates a category or a tag. An empty Slug is derived from Name.
type TermInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// TermUpdateInput updates a category or a tag. Nil fields are not sent.
type TermUpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserCreateInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// UserUpdateInput deliberately has no email field: the server rejects email
// changes after creation.
type UserUpdateInput struct {
	Name   *string `json:"name,omitempty"`
	Role   *Role   `json:"role,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Media is the normalized media record. See NormalizeMedia.
type Media struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	UploadedBy   AuthorRef `json:"uploadedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// UploadFailure describes one file the server refused in a batch upload.
type UploadFailure struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

// UploadBatch is the partitioned result of a multi-file upload. Callers must
// inspect Failed/FailedCount; a nil error does not mean every file landed.
type UploadBatch struct {
	Uploads     []Media         `json:"uploads"`
	Failed      []UploadFailure `json:"failed"`
	Total       int             `json:"total"`
	Successful  int             `json:"successful"`
	FailedCount int             `json:"failedCount"`
}

// PostRef is the post summary attached to admin comment views.
type PostRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type Comment struct {
	ID         string        `json:"id"`
	Content    string        `json:"content"`
	AuthorName string        `json:"authorName"`
	AuthorURL  string        `json:"authorUrl,omitempty"`
	ParentID   string        `json:"parentId,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	Status     CommentStatus `json:"status,omitempty"`
	Post       *PostRef      `json:"post,omitempty"`
}

// CommentInput is the body of the public comment form.
type CommentInput struct {
	Content     string `json:"content"`
	ParentID    string `json:"parentId,omitempty"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	AuthorURL   string `json:"authorUrl,omitempty"`
}

// LoginResult is the payload of POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is the list envelope returned by every list endpoint.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Item is the single-record envelope.
type Item[T any] struct {
	Data T `json:"data"`
}

// DashboardStats are the admin console totals.
type DashboardStats struct {
	TotalPosts      int
	PublishedPosts  int
	DraftPosts      int
	TotalMedia      int
	TotalUsers      int
	TotalCategories int
	TotalTags       int
	PendingComments int
}

// Operation is one recorded console mutation.
type Operation struct {
	ID         int64
	RunID      string
	Operation  string
	Parameters string
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
}
