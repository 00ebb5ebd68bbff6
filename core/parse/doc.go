// Package parse interprets vision-model responses that did not decode as
// JSON on the first try. Models wrap their answer in markdown fences, bury
// it in prose, truncate it, or skip JSON entirely, so the [Interpreter]
// walks an ordered ladder of [Strategy] values, each cheaper and less lossy
// than the next:
//
//  1. [Fenced]: strip ```json fences and decode.
//  2. [Embedded]: decode the widest {...} substring.
//  3. [Repaired] (opt-in via [WithRepair]): run jsonrepair over the
//     candidate and unwrap schema-style {"type","value"} envelopes.
//  4. [Unstructured]: labelled-text extraction from package textparse.
//
// Every rung reports an [Outcome] instead of failing; the last rung always
// succeeds. [ParseAIResponse] is the default ladder without repair.
package parse
