// Package mailbox carries coordination messages between simulated robots.
//
// Robots never share memory. The only way one robot affects another is by
// posting a [bidding.Message] to the [Mailbox]. A message posted during a
// tick is delivered to every other member at the start of the next tick,
// never to its sender, and each recipient receives its own copy.
//
// # Delivery Model
//
// The medium is unordered and at-least-once:
//
//   - [WithShuffle] randomizes the order of each robot's inbox
//   - [WithDuplicateRate] delivers some messages twice
//   - [WithSeed] makes both reproducible
//
// The exploration core tolerates both by folding messages before it
// dispatches them and by registering doorways idempotently.
//
// # Trace
//
// With [WithStore], each delivery is appended to a JSONL trace:
//
//	{dir}/trace.jsonl -- one [Record] per delivered copy
//
// [ReadTrace] loads it back, [FilterRecords] narrows it, and [FormatTrace]
// renders it for the terminal.
//
// # Thread Safety
//
// [Mailbox] and [Store] are safe for concurrent use via an internal mutex.
package mailbox
