package httpx

// Cookie names.
const (
	SessionCookieName        = "session_id"
	oauthStateCookie         = "oauth_state"
	oauthNonceCookie         = "oauth_nonce"
	postLoginRedirectCookie  = "post_login_redirect"
	oauthCookieMaxAgeSeconds = 600
)

// Page names select the content template and the highlighted nav entry.
const (
	PageLogin         = "login"
	PageSignedOut     = "signed-out"
	PageError         = "error"
	PageHome          = "home"
	PageJob           = "job"
	PageDashboard     = "dashboard"
	PageDisputes      = "disputes"
	PageDispute       = "dispute"
	PageInvoices      = "invoices"
	PageInvoice       = "invoice"
	PagePayments      = "payments"
	PageUsers         = "users"
	PageSubscriptions = "subscriptions"
	PageSubscription  = "subscription"
)

// Fragment names are partial templates swapped in by htmx.
const (
	FragmentJobWorkflow  = "job-workflow"
	FragmentRefundDialog = "refund-dialog"
	FragmentSearchHits   = "search-hits"
	FragmentUserRow      = "user-row"
)

// Paging bounds for list screens and list endpoints.
const (
	defaultPageSize = 25
	maxPageSize     = 100
)
