/*
Package operation implements the find-and-replace run.

	+-------------+
	|   Replacer  |
	|    (Run)    |
	+------+------+
	       |
	+------+------+      +-------------+
	|    walk     | ---> |    text     |
	| (candidates)|      | (rewrite)   |
	+------+------+      +------+------+
	       |                    |
	       +--------+-----------+
	                |
	         +------+------+
	         |    files    |
	         | (read/write)|
	         +-------------+

🎯 Purpose:
- Walks each configured root and picks files by skip token and extension
- Applies the ordered rules to each file's full content
- Rewrites a file only when the result differs from what is on disk
- Accumulates a RunSummary for the report

🔄 Flow:
1. For each root: warn and record a failure if it does not exist
2. For each candidate file: read, replace, compare, write
3. Record a FileOutcome for every rewritten file, in traversal order
4. Stamp the duration and return the summary

⚡ Error handling:
Missing roots, unreadable files (including content that is not UTF-8),
failed writes and unlistable directories are each logged with their path and
recorded as a Failure. None of them stop the run, and none are retried.

🔍 Example:

	r, err := operation.New(operation.Options{Config: cfg, Logger: logger})
	if err != nil {
		return errors.Errorf("creating replacer: %w", err)
	}
	summary, err := r.Run(ctx)
*/
package operation
