package outcome

import (
	"strconv"

	"github.com/distributed-mis/pkg/graphio"
)

// WriteCSV persists every recorded outcome as a flat CSV, for a demo run
// that wants its result reviewable outside the process.
func (s *Set) WriteCSV(filePath string) error {
	all := s.All()
	rows := make([][]string, len(all))
	for i, o := range all {
		rows[i] = []string{
			strconv.Itoa(o.NodeID),
			strconv.FormatBool(o.InMIS),
			strconv.Itoa(o.RoundsOrPhasesUsed),
			strconv.Itoa(o.MessagesSent),
			strconv.Itoa(o.MessagesReceived),
		}
	}
	headers := []string{"node_id", "in_mis", "rounds_or_phases_used", "messages_sent", "messages_received"}
	return graphio.WriteCSV(filePath, headers, rows)
}
