// Package rollback records reversible side effects of a scaffolding run and
// undoes them, newest first, when the run fails. A Ledger is single-use: it
// is either rolled back once or discarded once the run succeeds.
package rollback
