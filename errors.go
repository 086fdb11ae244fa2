package postkit

import (
	"errors"

	"github.com/goliatone/go-postkit/internal/runtimeconfig"
)

// ErrModuleDisabled rejects construction when the module is switched off.
var ErrModuleDisabled = errors.New("postkit: module is disabled")

// ErrSourceUnreadable wraps filesystem failures while loading a document.
var ErrSourceUnreadable = errors.New("postkit: source document unreadable")

// ErrAlreadyPublished is returned by the ledger gate when a document was
// already published everywhere and --force was not given.
var ErrAlreadyPublished = errors.New("postkit: document already published")

// Configuration sentinels, re-exported for host applications.
var (
	ErrPostLengthInvalid       = runtimeconfig.ErrPostLengthInvalid
	ErrSummaryLengthInvalid    = runtimeconfig.ErrSummaryLengthInvalid
	ErrHistoryDatabaseRequired = runtimeconfig.ErrHistoryDatabaseRequired
	ErrMarkdownEngineUnknown   = runtimeconfig.ErrMarkdownEngineUnknown
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
)
