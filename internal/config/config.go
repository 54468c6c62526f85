package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Assistant/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Assistant"
	AppID             = "com.github.tartampluch.go-assistant"
	CommandName       = "go-assistant"
	KeyringService    = "com.github.tartampluch.go-assistant"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "config.toml"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported contact files.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagLanguage     = "lang"
	FlagServe        = "serve"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescConfig   = "Path to the settings file"
	FlagDescLanguage = "Language of the assistant replies (en, fr)"
	FlagDescServe    = "Serve the birthdays calendar on this local port"
	CmdShort         = "Interactive address book assistant"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Shell
// -----------------------------------------------------------------------------

const (
	// ShellMaxLineBytes bounds a single input line.
	ShellMaxLineBytes = 64 * 1024

	// ArgsSeparator joins expected argument labels; the last pair is joined
	// with the localized TKeyArgsAnd word.
	ArgsSeparator = ", "

	LineSeparator = "\n"
)

// SupportedLanguages defines the list of available reply languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Command Names & Argument Labels
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdAddPhone     = "add-phone"
	CmdRemovePhone  = "remove-phone"
	CmdDelete       = "delete"
	CmdHelp         = "help"
	CmdImport       = "import"
	CmdExport       = "export"
	CmdCalendar     = "calendar"
	CmdLogin        = "login"
	CmdExit         = "exit"
	CmdClose        = "close"
	CmdQuit         = "quit"
	CmdBye          = "bye"

	ArgName        = "name"
	ArgPhone       = "phone number"
	ArgOldPhone    = "old phone number"
	ArgNewPhone    = "new phone number"
	ArgBirthday    = "birthday"
	ArgSource      = "file or URL"
	ArgPath        = "file path"
	ArgUser        = "user"
	ArgPassword    = "password"
	PhoneMissing   = "-"
	ReplyLineEntry = "%s: %s"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "welcome"
	TKeyPrompt           = "prompt"
	TKeyHello            = "reply_hello"
	TKeyGoodbye          = "reply_goodbye"
	TKeyContactAdded     = "reply_contact_added"
	TKeyContactExists    = "reply_contact_exists"
	TKeyContactUpdated   = "reply_contact_updated"
	TKeyContactMissing   = "reply_contact_missing"
	TKeyContactDeleted   = "reply_contact_deleted"
	TKeyNoContacts       = "reply_no_contacts"
	TKeyNoPhones         = "reply_no_phones"
	TKeyPhoneAdded       = "reply_phone_added"
	TKeyPhoneRemoved     = "reply_phone_removed"
	TKeyBirthdayAdded    = "reply_birthday_added"
	TKeyNoBirthday       = "reply_no_birthday"
	TKeyNoBirthdays      = "reply_no_birthdays"
	TKeyNoUpcoming       = "reply_no_upcoming"
	TKeyImported         = "reply_imported"         // Requires Added, Updated
	TKeyExported         = "reply_exported"         // Requires Count, Path
	TKeyCalendarWritten  = "reply_calendar_written" // Requires Path
	TKeyCredentialsSaved = "reply_credentials_saved"
	TKeyCommands         = "reply_commands" // Requires Names
	TKeyInvalidCommand   = "err_invalid_command"
	TKeyGiveMeArgs       = "err_give_me_args" // Requires Args
	TKeyArgsAnd          = "args_and"
	TKeyUnexpected       = "err_unexpected" // Requires Error
	TKeyEvtSummary       = "event_summary"  // Requires Name
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"
	DefaultLeapYear = 2000 // Leap year fallback for vCard dates like --02-29

	// UpcomingWindowDays is the inclusive look-ahead of the birthdays command.
	UpcomingWindowDays = 7

	// PhoneLength is the exact number of digits of a phone number.
	PhoneLength = 10

	FormatUID = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Date Formats
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the user-facing birthday layout (DD.MM.YYYY).
	DateFormatBirthday = "02.01.2006"

	// DateFormatCongratulation is the layout of the birthdays listing (YYYY.MM.DD).
	DateFormatCongratulation = "2006.01.02"

	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Assistant//Address Book//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goassistant"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"

	DefaultICalRefresh = 1 * time.Hour

	// VCardNamespace seeds the name-based UUIDs of exported contacts.
	VCardNamespace = "urn:" + AppID + ":contact"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteCalendar       = "/birthdays.ics"
	RouteContacts       = "/contacts.vcf"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Domain)
// -----------------------------------------------------------------------------

const (
	ErrNameEmpty        = "Name cannot be empty"
	ErrPhoneEmpty       = "Phone number cannot be empty"
	ErrPhoneLength      = "Phone number must be exactly 10 digits"
	ErrPhoneDigits      = "Phone number must contain only digits"
	ErrBirthdayFormat   = "Invalid birthday format. Use DD.MM.YYYY"
	ErrValidation       = "validation failed"
	ErrPhoneExists      = "Phone number already exists"
	ErrPhoneMissing     = "Phone number does not exist"
	ErrRecordMissing    = "Contact does not exist"
	ErrRecordExists     = "Contact already exists"
	ErrCommandNotFound  = "command is not registered"
	ErrCommandExists    = "command is already registered"
	ErrCommandInvalid   = "command needs at least one name and a handler"
	ErrUnsupportedParam = "unsupported handler parameter"
	ErrArgumentCount    = "wrong number of arguments"
	ErrQuit             = "session closed"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardEncode    = "failed to encode vCard data"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrConfigDir      = "could not determine user config dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrSettingsLoad   = "failed to load settings file"
	ErrSettingsEnv    = "failed to parse environment overrides"
	ErrPathExpand     = "failed to expand path"
	ErrFileOpen       = "failed to open file"
	ErrFileWrite      = "failed to write file"
	ErrKeyringSet     = "failed to store credentials"
	ErrRegistry       = "failed to register commands"
	ErrShellRead      = "failed to read input"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary = "Birthday: %s"

	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Feed cache updated"
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgSessionEnd    = "Session ended"
	MsgCtxCancel     = "Context cancelled, closing session"
	MsgDispatch      = "Command dispatched"
	MsgDispatchFail  = "Command failed"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgSkippedName   = "Skipping vCard without a name"
	MsgImportDone    = "vCard import finished"
	MsgExportDone    = "vCard export finished"
	MsgCalendarDone  = "Calendar generation successful"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgSettingsNone  = "No settings file, using defaults"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgPublishFail   = "Failed to refresh feed snapshot"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyUser      = "user"
	LogKeyCommand   = "command"
	LogKeyArgs      = "arg_count"
	LogKeyAdded     = "added"
	LogKeyUpdated   = "updated"
	LogKeyTotal     = "total_cards"
	LogKeyCount     = "count"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompShell    = "shell"
	CompCommand  = "command"
	CompExchange = "exchange"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompSettings = "settings"
	CompMain     = "main"
	CompI18n     = "i18n"
)
