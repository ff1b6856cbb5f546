// Package workflow drives the storage workflow: provision a bucket, write an
// object through a scoped writer, then list the bucket and verify the object
// is there.
//
// # Steps
//
//   - EnsureBucket: creates the bucket; an existing bucket is accepted so the
//     following writes still go through.
//   - Upload: opens a writer, streams the payload and closes it. The object is
//     only committed, and its metadata only available, once Close succeeds.
//   - List: enumerates the bucket, checking every entry for failure before
//     reading its value.
//   - Verify: requires exactly one listed object with the written key, and
//     optionally that it is the only object and that its content digest matches.
//   - Run: the full sequence, with an optional cleanup delete. Runs are stored
//     in the workflow_runs table when a database is connected.
//
// Failures are reported, not repaired: retries happen inside the storage
// client according to its configured retry policy.
//
// # HTTP Endpoints
//
//   - POST /workflow/bucket : Ensures the bucket exists.
//   - PUT /workflow/objects/{key} : Uploads the request body.
//   - GET /workflow/objects : Lists objects (supports ?prefix= and ?limit=).
//   - POST /workflow/run : Runs the full workflow from a JSON plan.
//   - GET /workflow/runs : Recent run history.
package workflow
