// Package slogobs implements observability.Provider with log/slog.
//
// [New] builds an [Observer] whose [Handler] renders compact, pretty or JSON
// lines. Format and level default to IDX_LOG_FORMAT and IDX_LOG_LEVEL, with
// LOG_FORMAT and LOG_LEVEL as fallbacks. Counters keep their totals in memory
// so the batch summary can report them.
package slogobs
