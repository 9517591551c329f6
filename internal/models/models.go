package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

const (
	BookStatusUpcoming  = "UPCOMING"
	BookStatusCurrent   = "CURRENT"
	BookStatusCompleted = "COMPLETED"
)

const (
	DiscussionGeneral  = "GENERAL"
	DiscussionWeekly   = "WEEKLY"
	DiscussionMidmonth = "MIDMONTH"
	DiscussionEndmonth = "ENDMONTH"
)

const (
	SessionScheduled = "SCHEDULED"
	SessionLive      = "LIVE"
	SessionCompleted = "COMPLETED"
	SessionCancelled = "CANCELLED"
)

const (
	NewsletterDraft     = "DRAFT"
	NewsletterPublished = "PUBLISHED"
)

const DefaultSessionDuration = 90

var GalleryCategories = []string{"READING_NOOK", "COFFEE_WINE", "BOOK_NOTES", "QUOTES", "OTHER"}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Image        *string   `json:"image" db:"image"`
	Role         string    `json:"role" db:"role"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserSummary is the author attribution embedded in comments, quotes, posts and reflections.
type UserSummary struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Image *string   `json:"image" db:"image"`
}

type BookSummary struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Author     string    `json:"author" db:"author"`
	CoverImage *string   `json:"coverImage" db:"cover_image"`
}

type Book struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Author      string     `json:"author" db:"author"`
	CoverImage  *string    `json:"coverImage" db:"cover_image"`
	Description string     `json:"description" db:"description"`
	Themes      string     `json:"themes" db:"themes"`
	Status      string     `json:"status" db:"status"`
	StartDate   *time.Time `json:"startDate" db:"start_date"`
	EndDate     *time.Time `json:"endDate" db:"end_date"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	DiscussionCount int             `json:"discussionCount" db:"discussion_count"`
	WeeklyPlans     []WeeklyPlan    `json:"weeklyPlans,omitempty" db:"-"`
	Discussions     []Discussion    `json:"discussions,omitempty" db:"-"`
	LiveSession     *LiveSession    `json:"liveSession,omitempty" db:"-"`
	MonthlySummary  *MonthlySummary `json:"monthlySummary,omitempty" db:"-"`
}

type BookPatch struct {
	Title       *string
	Author      *string
	CoverImage  *string
	Description *string
	Themes      *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
}

type WeeklyPlan struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BookID     uuid.UUID `json:"bookId" db:"book_id"`
	WeekNumber int       `json:"weekNumber" db:"week_number"`
	Title      string    `json:"title" db:"title"`
	Focus      *string   `json:"focus" db:"focus"`
	Chapters   *string   `json:"chapters" db:"chapters"`
	StartDate  time.Time `json:"startDate" db:"start_date"`
	EndDate    time.Time `json:"endDate" db:"end_date"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	Prompts []Prompt `json:"prompts" db:"-"`
}

type WeeklyPlanPatch struct {
	WeekNumber *int
	Title      *string
	Focus      *string
	Chapters   *string
	StartDate  *time.Time
	EndDate    *time.Time
}

type Prompt struct {
	ID           uuid.UUID `json:"id" db:"id"`
	WeeklyPlanID uuid.UUID `json:"weeklyPlanId" db:"weekly_plan_id"`
	Question     string    `json:"question" db:"question"`
	Order        int       `json:"order" db:"display_order"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Discussion struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	BookID       uuid.UUID    `json:"bookId" db:"book_id"`
	Title        string       `json:"title" db:"title"`
	Content      string       `json:"content" db:"content"`
	Type         string       `json:"type" db:"type"`
	IsPinned     bool         `json:"isPinned" db:"is_pinned"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
	Book         *BookSummary `json:"book,omitempty" db:"book"`
	CommentCount int          `json:"commentCount" db:"comment_count"`
}

type DiscussionDetail struct {
	Discussion
	Comments []CommentThread `json:"comments"`
}

type DiscussionPatch struct {
	Title    *string
	Content  *string
	Type     *string
	IsPinned *bool
}

type Comment struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	DiscussionID uuid.UUID   `json:"discussionId" db:"discussion_id"`
	UserID       uuid.UUID   `json:"userId" db:"user_id"`
	ParentID     *uuid.UUID  `json:"parentId" db:"parent_id"`
	Content      string      `json:"content" db:"content"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
	User         UserSummary `json:"user" db:"user"`
}

// CommentThread is a comment together with its direct replies, each carrying its own.
type CommentThread struct {
	Comment
	Replies []CommentThread `json:"replies"`
}

type LiveSession struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	BookID         uuid.UUID    `json:"bookId" db:"book_id"`
	Title          string       `json:"title" db:"title"`
	Description    *string      `json:"description" db:"description"`
	ScheduledAt    time.Time    `json:"scheduledAt" db:"scheduled_at"`
	Duration       int          `json:"duration" db:"duration"`
	Status         string       `json:"status" db:"status"`
	MeetingLink    *string      `json:"meetingLink" db:"meeting_link"`
	RecordingLink  *string      `json:"recordingLink" db:"recording_link"`
	VideoURL       *string      `json:"videoUrl" db:"video_url"`
	VideoThumbnail *string      `json:"videoThumbnail" db:"video_thumbnail"`
	Summary        *string      `json:"summary" db:"summary"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
	Book           *BookSummary `json:"book,omitempty" db:"book"`
}

type LiveSessionPatch struct {
	Title          *string
	Description    *string
	ScheduledAt    *time.Time
	Duration       *int
	Status         *string
	MeetingLink    *string
	RecordingLink  *string
	VideoURL       *string
	VideoThumbnail *string
	Summary        *string
}

type LiveSessionFilter struct {
	Upcoming bool
	Past     bool
	Recorded bool
	Now      time.Time
	Limit    int
}

type Quote struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	UserID     uuid.UUID   `json:"userId" db:"user_id"`
	BookTitle  string      `json:"bookTitle" db:"book_title"`
	BookAuthor string      `json:"bookAuthor" db:"book_author"`
	QuoteText  string      `json:"quoteText" db:"quote_text"`
	PageNumber *int        `json:"pageNumber" db:"page_number"`
	Note       *string     `json:"note" db:"note"`
	IsPublic   bool        `json:"isPublic" db:"is_public"`
	Likes      int         `json:"likes" db:"likes"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	User       UserSummary `json:"user" db:"user"`
}

// VisibilityFilter narrows member-authored listings: ViewerID sees their own
// private rows, AuthorID restricts to one author.
type VisibilityFilter struct {
	ViewerID *uuid.UUID
	AuthorID *uuid.UUID
	Category string
	Limit    int
}

type GalleryPost struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"userId" db:"user_id"`
	Title       string      `json:"title" db:"title"`
	Description *string     `json:"description" db:"description"`
	ImageURL    string      `json:"imageUrl" db:"image_url"`
	Category    string      `json:"category" db:"category"`
	IsPublic    bool        `json:"isPublic" db:"is_public"`
	Likes       int         `json:"likes" db:"likes"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	User        UserSummary `json:"user" db:"user"`
}

type Newsletter struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Subject         string     `json:"subject" db:"subject"`
	Content         string     `json:"content" db:"content"`
	Featured        *string    `json:"featured" db:"featured"`
	MemberSpotlight *string    `json:"memberSpotlight" db:"member_spotlight"`
	TopQuotes       *string    `json:"topQuotes" db:"top_quotes"`
	UpcomingEvents  *string    `json:"upcomingEvents" db:"upcoming_events"`
	Status          string     `json:"status" db:"status"`
	PublishedAt     *time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

type NewsletterPatch struct {
	Title           *string
	Subject         *string
	Content         *string
	Featured        *string
	MemberSpotlight *string
	TopQuotes       *string
	UpcomingEvents  *string
}

type MonthlySummary struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BookID      uuid.UUID `json:"bookId" db:"book_id"`
	Content     string    `json:"content" db:"content"`
	KeyLessons  *string   `json:"keyLessons" db:"key_lessons"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Reflections []Reflection `json:"reflections" db:"-"`
}

type Reflection struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	SummaryID uuid.UUID   `json:"summaryId" db:"summary_id"`
	UserID    uuid.UUID   `json:"userId" db:"user_id"`
	Content   string      `json:"content" db:"content"`
	IsPublic  bool        `json:"isPublic" db:"is_public"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	User      UserSummary `json:"user" db:"user"`
}

type AdminStats struct {
	TotalBooks       int    `json:"totalBooks" db:"total_books"`
	TotalMembers     int    `json:"totalMembers" db:"total_members"`
	TotalDiscussions int    `json:"totalDiscussions" db:"total_discussions"`
	UpcomingSessions int    `json:"upcomingSessions" db:"upcoming_sessions"`
	RecentBooks      []Book `json:"recentBooks" db:"-"`
}
