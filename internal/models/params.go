package models

type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type HandleRegisterParams struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type HandleLoginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type HandleCreateBookParams struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Author      string   `json:"author" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	CoverImage  *string  `json:"coverImage" validate:"omitempty,max=2048"`
	Themes      []string `json:"themes" validate:"omitempty,dive,required,max=50"`
	Status      string   `json:"status" validate:"omitempty,oneof=UPCOMING CURRENT COMPLETED"`
	StartDate   *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type HandleUpdateBookParams struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Author      *string  `json:"author" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	CoverImage  *string  `json:"coverImage" validate:"omitempty,max=2048"`
	Themes      []string `json:"themes" validate:"omitempty,dive,required,max=50"`
	Status      *string  `json:"status" validate:"omitempty,oneof=UPCOMING CURRENT COMPLETED"`
	StartDate   *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type HandleCreateWeeklyPlanParams struct {
	WeekNumber int     `json:"weekNumber" validate:"required,min=1"`
	Title      string  `json:"title" validate:"required,max=200"`
	Focus      *string `json:"focus" validate:"omitempty,max=500"`
	Chapters   *string `json:"chapters" validate:"omitempty,max=200"`
	StartDate  string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string  `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type HandleUpdateWeeklyPlanParams struct {
	WeekNumber *int    `json:"weekNumber" validate:"omitempty,min=1"`
	Title      *string `json:"title" validate:"omitempty,min=1,max=200"`
	Focus      *string `json:"focus" validate:"omitempty,max=500"`
	Chapters   *string `json:"chapters" validate:"omitempty,max=200"`
	StartDate  *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type HandleCreatePromptParams struct {
	Question string `json:"question" validate:"required,max=1000"`
	Order    *int   `json:"order" validate:"omitempty,min=1"`
}

type HandleCreateDiscussionParams struct {
	BookID   string `json:"bookId" validate:"required,uuid"`
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=GENERAL WEEKLY MIDMONTH ENDMONTH"`
	IsPinned bool   `json:"isPinned"`
}

type HandleUpdateDiscussionParams struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	Type     *string `json:"type" validate:"omitempty,oneof=GENERAL WEEKLY MIDMONTH ENDMONTH"`
	IsPinned *bool   `json:"isPinned"`
}

type HandleCreateCommentParams struct {
	DiscussionID string  `json:"discussionId" validate:"required,uuid"`
	Content      string  `json:"content" validate:"required,max=5000"`
	ParentID     *string `json:"parentId" validate:"omitempty,uuid"`
}

type HandleUpdateCommentParams struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type HandleCreateLiveSessionParams struct {
	BookID      string  `json:"bookId" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ScheduledAt string  `json:"scheduledAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Duration    *int    `json:"duration" validate:"omitempty,min=1,max=600"`
	MeetingLink *string `json:"meetingLink" validate:"omitempty,url"`
}

type HandleUpdateLiveSessionParams struct {
	Title          *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	ScheduledAt    *string `json:"scheduledAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Duration       *int    `json:"duration" validate:"omitempty,min=1,max=600"`
	Status         *string `json:"status" validate:"omitempty,oneof=SCHEDULED LIVE COMPLETED CANCELLED"`
	MeetingLink    *string `json:"meetingLink" validate:"omitempty,url"`
	RecordingLink  *string `json:"recordingLink" validate:"omitempty,url"`
	VideoURL       *string `json:"videoUrl" validate:"omitempty,url"`
	VideoThumbnail *string `json:"videoThumbnail" validate:"omitempty,url"`
	Summary        *string `json:"summary" validate:"omitempty,max=5000"`
}

type HandleCreateQuoteParams struct {
	BookTitle  string  `json:"bookTitle" validate:"required,max=200"`
	BookAuthor string  `json:"bookAuthor" validate:"required,max=200"`
	QuoteText  string  `json:"quoteText" validate:"required,max=2000"`
	PageNumber *int    `json:"pageNumber" validate:"omitempty,min=1"`
	Note       *string `json:"note" validate:"omitempty,max=2000"`
	IsPublic   *bool   `json:"isPublic"`
}

type HandleCreateGalleryPostParams struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    string  `json:"category" validate:"required,oneof=READING_NOOK COFFEE_WINE BOOK_NOTES QUOTES OTHER"`
	IsPublic    bool    `json:"isPublic"`
}

type HandleCreateNewsletterParams struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Subject         string  `json:"subject" validate:"required,max=200"`
	Content         string  `json:"content" validate:"required"`
	Featured        *string `json:"featured"`
	MemberSpotlight *string `json:"memberSpotlight"`
	TopQuotes       *string `json:"topQuotes"`
	UpcomingEvents  *string `json:"upcomingEvents"`
}

type HandleUpdateNewsletterParams struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=200"`
	Subject         *string `json:"subject" validate:"omitempty,min=1,max=200"`
	Content         *string `json:"content" validate:"omitempty,min=1"`
	Featured        *string `json:"featured"`
	MemberSpotlight *string `json:"memberSpotlight"`
	TopQuotes       *string `json:"topQuotes"`
	UpcomingEvents  *string `json:"upcomingEvents"`
}

type HandleUpsertSummaryParams struct {
	Content     string  `json:"content" validate:"required"`
	KeyLessons  *string `json:"keyLessons"`
	IsPublished bool    `json:"isPublished"`
}

type HandleCreateReflectionParams struct {
	Content  string `json:"content" validate:"required,max=5000"`
	IsPublic *bool  `json:"isPublic"`
}

type HandleUpdateRoleParams struct {
	Role string `json:"role" validate:"required,oneof=MEMBER ADMIN"`
}
