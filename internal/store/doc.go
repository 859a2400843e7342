// Package store persists the local session of nutrilog.
//
// The [Store] interface has two backends selected at build time:
//   - Default: SQLite through the pure Go modernc.org/sqlite driver
//   - With -tags bolt: BoltDB, one bucket of JSON values
//
// Only the login survives between runs. Foods, meals and settings always
// come from the API.
//
//	st, err := store.OpenDefault()
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//
//	session, err := st.GetSession()
package store
