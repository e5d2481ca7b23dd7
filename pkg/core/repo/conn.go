package repo

import "context"

// TxHandler is called by Conn.Tx with a fresh transaction. The
// transaction is committed if the handler returns nil and is rolled
// back otherwise.
type TxHandler func(context.Context, Tx) error

// Conn represents one database connection which is borrowed from a
// Pool. The repositories run their queries on it directly or within
// the transactions which it begins.
// It is unsafe to be used concurrently.
type Conn interface {
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
