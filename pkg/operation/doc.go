/*
Package operation runs one batch task over the selected files of a base folder.

	+------------+     +-----------+     +---------+     +--------+
	| Validating | --> | Selecting | --> | Running | --> | Result |
	+------------+     +-----------+     +---------+     +--------+
	      |                  |                |
	      v                  v                v
	   Aborted        NothingSelected      Aborted

🎯 Purpose:
- Resolves the base folder and selects files through the file table
- Stages a backup and a working copy of each selected file
- Runs the task on the working copy and records the outcome in the store

🔄 Flow:
1. Validate the base folder (an override is persisted first)
2. Fill the file table from a folder scan when it is empty
3. Select entries, clear old statuses
4. For each entry: stage, open, run, save, close, record
5. Stop at the first failure; the failing row is marked and logged

⚡ Apply is different: every staged edit is attempted and failures are
counted, never fatal.

🔍 Example:

	op := operation.NewBatchOperation(opts, task.NewRenumber("", ""))
	summary, err := operation.NewRunner().Run(ctx, op)
*/
package operation
