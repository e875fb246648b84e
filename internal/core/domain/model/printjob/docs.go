// Package printjob provides the PrintJob aggregate: the queue entry that
// carries a shipment's label to a remote print agent.
//
// The claim protocol makes the queue safe for a fire-and-forget agent:
//   - An agent polls and receives jobs under a time-limited claim
//   - Only the claim holder's completion report changes the job
//   - An abandoned claim expires and the job becomes claimable again
//   - Attempts count claims; a job out of attempts parks in Failed
//     until an operator retries it with a fresh budget
package printjob
