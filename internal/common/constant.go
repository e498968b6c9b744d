package common

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "auth_token"

// AntiForgeryFieldName is the JSON key and multipart form field holding the
// shared anti-forgery value.
const AntiForgeryFieldName = "csrf_token"

// DateLayout is the wire and storage format for dates of birth.
const DateLayout = "2006-01-02"
