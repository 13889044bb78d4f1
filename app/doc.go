/*
Package app contains the standard implementation of an ABCI application
backed by a versioned store.

StoreApp holds the state and answers queries. BaseApp adds the
transaction processing on top of it: every transaction runs against its
own cache wrap of the block state, which is written only when the handler
succeeds. A failed transaction leaves no trace in the state.
*/
package app
