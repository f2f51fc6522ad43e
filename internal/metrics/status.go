// Package metrics exposes the Prometheus collectors of the forum indexer.
package metrics

const namespace = "decentforum"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
