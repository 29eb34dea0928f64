package api

import (
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var (
	errMissingID    = errors.New("id is required")
	errMissingOwner = errors.New("owner id is required")
)

// User is a platform account.
type User struct {
	ID        string
	FullName  string
	Username  string
	Email     string
	Phone     string
	Role      string
	Status    string
	Coins     float64
	Verified  bool
	CreatedAt time.Time
}

func decodeUser(r gjson.Result) User {
	return User{
		ID:        str(r, "_id", "id"),
		FullName:  str(r, "fullName", "fullname", "name"),
		Username:  str(r, "username", "userName"),
		Email:     str(r, "email"),
		Phone:     str(r, "phone", "phoneNumber"),
		Role:      str(r, "role"),
		Status:    str(r, "status"),
		Coins:     numOr(r, "coins", "wallet.coins", "balance"),
		Verified:  boolean(r, "verified", "isVerified"),
		CreatedAt: timestamp(r, "createdAt", "created_at"),
	}
}

// Validate checks the fields the console relies on.
func (u User) Validate() error {
	var errs []error
	if u.ID == "" {
		errs = append(errs, errMissingID)
	}
	if u.Email == "" && u.Username == "" {
		errs = append(errs, errors.New("email or username is required"))
	}
	return errors.Join(errs...)
}

// DisplayName returns the best human label for the user.
func (u User) DisplayName() string {
	for _, v := range []string{u.FullName, u.Username, u.Email} {
		if v != "" {
			return v
		}
	}
	return u.ID
}

// Post is a piece of user content.
type Post struct {
	ID        string
	OwnerID   string
	OwnerName string
	Caption   string
	Type      string
	MediaURL  string
	Likes     float64
	Comments  float64
	CreatedAt time.Time
}

func decodePost(r gjson.Result) Post {
	return Post{
		ID:        str(r, "_id", "id", "postId"),
		OwnerID:   str(r, "ownerId", "owner._id", "userId", "user._id"),
		OwnerName: str(r, "ownerName", "owner.fullName", "user.fullName", "owner.username"),
		Caption:   str(r, "caption", "text", "description"),
		Type:      str(r, "type", "mediaType"),
		MediaURL:  str(r, "mediaUrl", "media", "image", "video"),
		Likes:     numOr(r, "likesCount", "likes.#", "likes"),
		Comments:  numOr(r, "commentsCount", "comments.#", "comments"),
		CreatedAt: timestamp(r, "createdAt", "created_at"),
	}
}

// Validate checks the fields the console relies on.
func (p Post) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errMissingID)
	}
	if p.OwnerID == "" {
		errs = append(errs, errMissingOwner)
	}
	return errors.Join(errs...)
}

// CoinPayment is a coin purchase.
type CoinPayment struct {
	ID        string
	OrderID   string
	UserID    string
	UserName  string
	Email     string
	Amount    float64
	Coins     float64
	Currency  string
	Method    string
	Status    string
	CreatedAt time.Time
}

func decodeCoinPayment(r gjson.Result) CoinPayment {
	return CoinPayment{
		ID:        str(r, "_id", "id"),
		OrderID:   str(r, "orderId", "order_id", "transactionId"),
		UserID:    str(r, "userId", "user._id"),
		UserName:  str(r, "userName", "user.fullName", "user.username", "name"),
		Email:     str(r, "email", "user.email"),
		Amount:    numOr(r, "amount", "price"),
		Coins:     numOr(r, "coins", "coinAmount"),
		Currency:  str(r, "currency"),
		Method:    str(r, "paymentMethod", "method"),
		Status:    str(r, "status", "paymentStatus"),
		CreatedAt: timestamp(r, "createdAt", "created_at", "date"),
	}
}

// Validate checks the fields the console relies on.
func (p CoinPayment) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errMissingID)
	}
	if p.Amount < 0 {
		errs = append(errs, errors.New("amount must not be negative"))
	}
	return errors.Join(errs...)
}

// Approval statuses are owned by the platform; the console only displays them.
const (
	ApprovalApproved = "approved"
	ApprovalPending  = "pending"
	ApprovalRejected = "rejected"
)

// CampaignOrder is a paid promotion order.
type CampaignOrder struct {
	ID             string
	OrderID        string
	CampaignTitle  string
	PackageName    string
	UserName       string
	Email          string
	Amount         float64
	Status         string
	ApprovalStatus string
	CreatedAt      time.Time
}

func decodeCampaignOrder(r gjson.Result) CampaignOrder {
	return CampaignOrder{
		ID:             str(r, "_id", "id"),
		OrderID:        str(r, "orderId", "order_id"),
		CampaignTitle:  str(r, "campaignTitle", "campaign.title", "title"),
		PackageName:    str(r, "packageName", "package.name"),
		UserName:       str(r, "userName", "user.fullName", "user.username"),
		Email:          str(r, "email", "user.email"),
		Amount:         numOr(r, "amount", "price"),
		Status:         str(r, "paymentStatus", "status"),
		ApprovalStatus: strings.ToLower(str(r, "adminApproval", "approvalStatus", "campaign.adminApproval")),
		CreatedAt:      timestamp(r, "createdAt", "created_at"),
	}
}

// Validate checks the fields the console relies on.
func (o CampaignOrder) Validate() error {
	if o.ID == "" {
		return errMissingID
	}
	switch o.ApprovalStatus {
	case "", ApprovalApproved, ApprovalPending, ApprovalRejected:
		return nil
	default:
		return errors.New("unknown approval status " + o.ApprovalStatus)
	}
}

// CoinPackage is a purchasable coin bundle.
type CoinPackage struct {
	ID        string
	Name      string
	Coins     float64
	Price     float64
	Bonus     float64
	Active    bool
	CreatedAt time.Time
}

func decodeCoinPackage(r gjson.Result) CoinPackage {
	active := true
	if v := first(r, "isActive", "active"); v.Exists() {
		active = boolean(r, "isActive", "active")
	}
	return CoinPackage{
		ID:        str(r, "_id", "id"),
		Name:      str(r, "name", "title"),
		Coins:     numOr(r, "coins", "coinAmount"),
		Price:     numOr(r, "price", "amount"),
		Bonus:     numOr(r, "bonus", "bonusCoins"),
		Active:    active,
		CreatedAt: timestamp(r, "createdAt", "created_at"),
	}
}

// Validate checks the fields the console relies on.
func (p CoinPackage) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errMissingID)
	}
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	return errors.Join(errs...)
}

// CampaignPackage is a purchasable promotion tier.
type CampaignPackage struct {
	ID           string
	Name         string
	Price        float64
	DurationDays float64
	Reach        float64
	Active       bool
	CreatedAt    time.Time
}

func decodeCampaignPackage(r gjson.Result) CampaignPackage {
	active := true
	if v := first(r, "isActive", "active"); v.Exists() {
		active = boolean(r, "isActive", "active")
	}
	return CampaignPackage{
		ID:           str(r, "_id", "id"),
		Name:         str(r, "name", "title"),
		Price:        numOr(r, "price", "amount"),
		DurationDays: numOr(r, "durationDays", "duration", "days"),
		Reach:        numOr(r, "reach", "estimatedReach", "views"),
		Active:       active,
		CreatedAt:    timestamp(r, "createdAt", "created_at"),
	}
}

// Validate checks the fields the console relies on.
func (p CampaignPackage) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errMissingID)
	}
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	return errors.Join(errs...)
}

// Spin is one play of the wheel or slot game.
type Spin struct {
	ID         string
	UserID     string
	UserName   string
	Game       string
	Reward     string
	RewardType string
	Value      float64
	CreatedAt  time.Time
}

func decodeSpin(r gjson.Result) Spin {
	return Spin{
		ID:         str(r, "_id", "id"),
		UserID:     str(r, "userId", "user._id"),
		UserName:   str(r, "userName", "user.fullName", "user.username"),
		Game:       str(r, "game", "type", "spinType"),
		Reward:     str(r, "reward", "result", "prize"),
		RewardType: str(r, "rewardType", "prizeType"),
		Value:      numOr(r, "value", "amount", "coins"),
		CreatedAt:  timestamp(r, "createdAt", "created_at", "spunAt"),
	}
}

// Validate checks the fields the console relies on.
func (s Spin) Validate() error {
	if s.ID == "" {
		return errMissingID
	}
	return nil
}

// Room is a live audio, video or chat room.
type Room struct {
	ID        string
	Name      string
	HostID    string
	HostName  string
	Type      string
	Status    string
	Members   float64
	CreatedAt time.Time
}

func decodeRoom(r gjson.Result) Room {
	return Room{
		ID:        str(r, "_id", "id", "roomId"),
		Name:      str(r, "name", "title", "roomName"),
		HostID:    str(r, "hostId", "host._id", "createdBy"),
		HostName:  str(r, "hostName", "host.fullName", "host.username"),
		Type:      str(r, "type", "roomType"),
		Status:    str(r, "status"),
		Members:   numOr(r, "membersCount", "members.#", "participants.#"),
		CreatedAt: timestamp(r, "createdAt", "created_at"),
	}
}

// Validate checks the fields the console relies on.
func (r Room) Validate() error {
	if r.ID == "" {
		return errMissingID
	}
	return nil
}

// Notification is an admin-facing notification.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Type      string
	Read      bool
	CreatedAt time.Time
}

func decodeNotification(r gjson.Result) Notification {
	return Notification{
		ID:        str(r, "_id", "id"),
		Title:     str(r, "title"),
		Message:   str(r, "message", "body", "text"),
		Type:      str(r, "type", "category"),
		Read:      boolean(r, "read", "isRead"),
		CreatedAt: timestamp(r, "createdAt", "created_at"),
	}
}

// Validate checks the fields the console relies on.
func (n Notification) Validate() error {
	if n.ID == "" {
		return errMissingID
	}
	return nil
}

// UnreadCount counts notifications not yet read.
func UnreadCount(notifications []Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// DownloadConfig describes a downloadable app build; Type is its identity.
type DownloadConfig struct {
	Type      string
	Version   string
	URL       string
	Notes     string
	Enabled   bool
	UpdatedAt time.Time
}

func decodeDownloadConfig(r gjson.Result) DownloadConfig {
	return DownloadConfig{
		Type:      str(r, "type", "platform"),
		Version:   str(r, "version"),
		URL:       str(r, "url", "downloadUrl", "link"),
		Notes:     str(r, "notes", "description"),
		Enabled:   boolean(r, "enabled", "isEnabled", "active"),
		UpdatedAt: timestamp(r, "updatedAt", "createdAt"),
	}
}

// Validate checks the fields the console relies on.
func (d DownloadConfig) Validate() error {
	if d.Type == "" {
		return errors.New("type is required")
	}
	return nil
}

// AnalyticsDay is one row of the daily activity report.
type AnalyticsDay struct {
	Date     time.Time
	Users    float64
	Posts    float64
	Payments float64
	Revenue  float64
	Spins    float64
}

func decodeAnalyticsDay(r gjson.Result) AnalyticsDay {
	return AnalyticsDay{
		Date:     timestamp(r, "date", "_id", "day"),
		Users:    numOr(r, "users", "newUsers", "signups"),
		Posts:    numOr(r, "posts", "newPosts"),
		Payments: numOr(r, "payments", "paymentsCount"),
		Revenue:  numOr(r, "revenue", "amount", "total"),
		Spins:    numOr(r, "spins", "spinsCount"),
	}
}

// Validate checks the fields the console relies on.
func (d AnalyticsDay) Validate() error {
	if d.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// Key identifies the day as YYYY-MM-DD.
func (d AnalyticsDay) Key() string {
	return d.Date.Format("2006-01-02")
}

// DayEntry is one activity record in a single day's breakdown.
type DayEntry struct {
	ID        string
	Type      string
	User      string
	Detail    string
	Amount    float64
	CreatedAt time.Time
}

func decodeDayEntry(r gjson.Result) DayEntry {
	return DayEntry{
		ID:        str(r, "_id", "id"),
		Type:      str(r, "type", "kind", "category"),
		User:      str(r, "user", "userName", "user.fullName", "user.username"),
		Detail:    str(r, "detail", "description", "title"),
		Amount:    numOr(r, "amount", "value", "coins"),
		CreatedAt: timestamp(r, "createdAt", "created_at", "time"),
	}
}

// Validate checks the fields the console relies on.
func (e DayEntry) Validate() error {
	if e.ID == "" {
		return errMissingID
	}
	return nil
}

// DashboardStats are the headline numbers of the dashboard.
type DashboardStats struct {
	TotalUsers       float64
	ActiveUsers      float64
	TotalPosts       float64
	TotalRooms       float64
	LiveRooms        float64
	TotalRevenue     float64
	PendingCampaigns float64
	TotalSpins       float64
}

func decodeDashboardStats(r gjson.Result) DashboardStats {
	return DashboardStats{
		TotalUsers:       numOr(r, "totalUsers", "users"),
		ActiveUsers:      numOr(r, "activeUsers"),
		TotalPosts:       numOr(r, "totalPosts", "posts"),
		TotalRooms:       numOr(r, "totalRooms", "rooms"),
		LiveRooms:        numOr(r, "liveRooms", "activeRooms"),
		TotalRevenue:     numOr(r, "totalRevenue", "revenue"),
		PendingCampaigns: numOr(r, "pendingCampaigns", "pendingApprovals"),
		TotalSpins:       numOr(r, "totalSpins", "spins"),
	}
}

// Validate accepts any stats payload; missing numbers read as zero.
func (DashboardStats) Validate() error { return nil }
