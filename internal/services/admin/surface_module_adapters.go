package admin

import (
	"net/http"

	accountmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/account"
	analyticsmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/analytics"
	dashboardmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/dashboard"
	gamesmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/games"
	listingmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/listing"
	notificationsmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/notifications"
)

type recordHandler func(w http.ResponseWriter, r *http.Request, id string)

// listService adapts a list page, plus its optional forms, to the listing
// route module. Missing forms answer 404.
type listService[T any] struct {
	*listPage[T]
	create http.HandlerFunc
	edit   recordHandler
	toggle recordHandler
}

func newListService[T any](page *listPage[T]) *listService[T] {
	return &listService[T]{listPage: page}
}

func (s *listService[T]) withCreate(create http.HandlerFunc) *listService[T] {
	s.create = create
	return s
}

func (s *listService[T]) withEdit(edit recordHandler) *listService[T] {
	s.edit = edit
	return s
}

func (s *listService[T]) withToggle(toggle recordHandler) *listService[T] {
	s.toggle = toggle
	return s
}

func (s *listService[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if s.create == nil {
		http.NotFound(w, r)
		return
	}
	s.create(w, r)
}

func (s *listService[T]) HandleEdit(w http.ResponseWriter, r *http.Request, id string) {
	if s.edit == nil {
		http.NotFound(w, r)
		return
	}
	s.edit(w, r, id)
}

func (s *listService[T]) HandleToggle(w http.ResponseWriter, r *http.Request, id string) {
	if s.toggle == nil {
		http.NotFound(w, r)
		return
	}
	s.toggle(w, r, id)
}

// listServices returns the listing services keyed by base path.
func (h *Handler) listServices() map[string]listingmodule.Service {
	l := h.lists
	return map[string]listingmodule.Service{
		l.users.base: newListService(l.users).
			withCreate(h.handleUserCreate).
			withEdit(h.handleUserEdit),
		l.posts.base:          newListService(l.posts),
		l.coinPayments.base:   newListService(l.coinPayments),
		l.campaignOrders.base: newListService(l.campaignOrders),
		l.coinPackages.base: newListService(l.coinPackages).
			withCreate(h.handleCoinPackageCreate),
		l.campaignPackages.base: newListService(l.campaignPackages).
			withCreate(h.handleCampaignPackageCreate),
		l.spins.base:         newListService(l.spins),
		l.rooms.base:         newListService(l.rooms),
		l.notifications.base: newListService(l.notifications),
		l.downloads.base: newListService(l.downloads).
			withCreate(h.handleDownloadCreate).
			withEdit(h.handleDownloadEdit).
			withToggle(h.handleDownloadToggle),
	}
}

type dashboardModuleService struct {
	handler *Handler
}

func newDashboardModuleService(h *Handler) dashboardmodule.Service {
	if h == nil {
		return nil
	}
	return dashboardModuleService{handler: h}
}

func (s dashboardModuleService) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	s.handler.handleDashboard(w, r)
}

type accountModuleService struct {
	handler *Handler
}

func newAccountModuleService(h *Handler) accountmodule.Service {
	if h == nil {
		return nil
	}
	return accountModuleService{handler: h}
}

func (s accountModuleService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	s.handler.handleLogin(w, r)
}

func (s accountModuleService) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s.handler.handleLogout(w, r)
}

func (s accountModuleService) HandlePassword(w http.ResponseWriter, r *http.Request) {
	s.handler.handlePassword(w, r)
}

func (s accountModuleService) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	s.handler.handlePreferences(w, r)
}

type gamesModuleService struct {
	handler *Handler
}

func newGamesModuleService(h *Handler) gamesmodule.Service {
	if h == nil {
		return nil
	}
	return gamesModuleService{handler: h}
}

func (s gamesModuleService) HandleWheel(w http.ResponseWriter, r *http.Request) {
	s.handler.handleWheel(w, r)
}

func (s gamesModuleService) HandleSlot(w http.ResponseWriter, r *http.Request) {
	s.handler.handleSlot(w, r)
}

func (s gamesModuleService) HandleSpinConfig(w http.ResponseWriter, r *http.Request) {
	s.handler.handleSpinConfig(w, r)
}

func (s gamesModuleService) HandleClearSpins(w http.ResponseWriter, r *http.Request) {
	s.handler.handleClearSpins(w, r)
}

type notificationsModuleService struct {
	handler *Handler
}

func newNotificationsModuleService(h *Handler) notificationsmodule.Service {
	if h == nil {
		return nil
	}
	return notificationsModuleService{handler: h}
}

func (s notificationsModuleService) HandleBadge(w http.ResponseWriter, r *http.Request) {
	s.handler.handleNotificationsBadge(w, r)
}

func (s notificationsModuleService) HandleClear(w http.ResponseWriter, r *http.Request) {
	s.handler.handleNotificationsClear(w, r)
}

type analyticsModuleService struct {
	handler *Handler
}

func newAnalyticsModuleService(h *Handler) analyticsmodule.Service {
	if h == nil {
		return nil
	}
	return analyticsModuleService{handler: h}
}

func (s analyticsModuleService) HandleDays(w http.ResponseWriter, r *http.Request) {
	s.handler.lists.analyticsDays.HandleIndex(w, r)
}

func (s analyticsModuleService) HandleDaysTable(w http.ResponseWriter, r *http.Request) {
	s.handler.lists.analyticsDays.HandleTable(w, r)
}

func (s analyticsModuleService) HandleDaysExport(w http.ResponseWriter, r *http.Request) {
	s.handler.lists.analyticsDays.HandleExport(w, r)
}

func (s analyticsModuleService) HandleDay(w http.ResponseWriter, r *http.Request, date string) {
	s.handler.handleAnalyticsDay(w, r, date)
}

func (s analyticsModuleService) HandleDayTable(w http.ResponseWriter, r *http.Request, date string) {
	s.handler.handleAnalyticsDayTable(w, r, date)
}

func (s analyticsModuleService) HandleDayExport(w http.ResponseWriter, r *http.Request, date string) {
	s.handler.handleAnalyticsDayExport(w, r, date)
}
