package simulator

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionPathFor(t *testing.T) {
	at := time.Date(2024, 6, 3, 9, 30, 0, 0, time.Local)
	got, err := partitionPathFor(map[string]interface{}{"timestamp": float64(at.Unix())})
	require.NoError(t, err)
	assert.Equal(t, "year=2024/month=06/day=03/hour=09", got)
}

func TestPartitionPathForBadTimestamp(t *testing.T) {
	_, err := partitionPathFor(map[string]interface{}{})
	assert.Error(t, err, "missing timestamp")

	_, err = partitionPathFor(map[string]interface{}{"timestamp": "half past nine"})
	assert.Error(t, err, "non-numeric timestamp")
}

func TestJSONOutputWritesPartitionedLines(t *testing.T) {
	base := t.TempDir()
	out := NewJSONOutput(base, "cafe_output")

	at := time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local)
	first, err := json.Marshal(map[string]interface{}{
		"timestamp": at.Unix(),
		"eventType": "CustomerArrival",
	})
	require.NoError(t, err)
	second, err := json.Marshal(map[string]interface{}{
		"timestamp": at.Add(5 * time.Minute).Unix(),
		"eventType": "CustomerArrival",
	})
	require.NoError(t, err)

	require.NoError(t, out.WriteMessage(TopicVisits, first))
	require.NoError(t, out.WriteMessage(TopicVisits, second))
	require.NoError(t, out.Close())

	partition, err := partitionPathFor(map[string]interface{}{"timestamp": float64(at.Unix())})
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(base, "cafe_output", TopicVisits, partition, "data.json"))
	require.NoError(t, err)
	assert.Equal(t, string(first)+"\n"+string(second)+"\n", string(contents))
}

func TestJSONOutputSplitsPartitionsByHour(t *testing.T) {
	base := t.TempDir()
	out := NewJSONOutput(base, "cafe_output")

	nine := time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local)
	ten := nine.Add(time.Hour)
	for _, at := range []time.Time{nine, ten} {
		msg, err := json.Marshal(map[string]interface{}{"timestamp": at.Unix()})
		require.NoError(t, err)
		require.NoError(t, out.WriteMessage(TopicServes, msg))
	}
	require.NoError(t, out.Close())

	for _, at := range []time.Time{nine, ten} {
		partition, err := partitionPathFor(map[string]interface{}{"timestamp": float64(at.Unix())})
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(base, "cafe_output", TopicServes, partition, "data.json"))
		assert.NoError(t, err, "partition for %s", at)
	}
}

func TestJSONOutputRejectsBadPayload(t *testing.T) {
	out := NewJSONOutput(t.TempDir(), "cafe_output")
	assert.Error(t, out.WriteMessage(TopicVisits, []byte("not json")))
	assert.Error(t, out.WriteMessage(TopicVisits, []byte(`{"eventType":"x"}`)), "no timestamp, no partition")
}

func TestCSVOutputWritesSortedHeaders(t *testing.T) {
	base := t.TempDir()
	out := NewCSVOutput(base, "cafe_output")

	at := time.Date(2024, 6, 3, 14, 0, 0, 0, time.Local)
	first, err := json.Marshal(map[string]interface{}{
		"timestamp": at.Unix(),
		"eventType": "ServeCustomer",
		"tip":       1.25,
	})
	require.NoError(t, err)
	// same partition, one field short
	second, err := json.Marshal(map[string]interface{}{
		"timestamp": at.Add(time.Minute).Unix(),
		"eventType": "ServeCustomer",
	})
	require.NoError(t, err)

	require.NoError(t, out.WriteMessage(TopicServes, first))
	require.NoError(t, out.WriteMessage(TopicServes, second))
	require.NoError(t, out.Close())

	partition, err := partitionPathFor(map[string]interface{}{"timestamp": float64(at.Unix())})
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(base, "cafe_output", TopicServes, partition, "data.csv"))
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two rows")

	assert.Equal(t, []string{"eventType", "timestamp", "tip"}, rows[0])
	assert.Equal(t, "ServeCustomer", rows[1][0])
	assert.Equal(t, "1.25", rows[1][2])
	assert.Equal(t, "", rows[2][2], "missing fields come out empty")
}

func TestConsoleOutput(t *testing.T) {
	out := &ConsoleOutput{}
	assert.NoError(t, out.WriteMessage(TopicVisits, []byte(`{"eventType":"CustomerArrival"}`)))
	assert.NoError(t, out.Close())
}

func TestGetSchema(t *testing.T) {
	for _, topic := range []string{
		TopicVisits,
		TopicOrders,
		TopicBrews,
		TopicServes,
		TopicComments,
		TopicPurchases,
		TopicDaySummaries,
	} {
		sh, err := GetSchema(topic)
		require.NoError(t, err, topic)
		assert.NotNil(t, sh, topic)
	}

	_, err := GetSchema("cafe_unknown_events")
	assert.Error(t, err)
}

func TestDetermineOutputDestination(t *testing.T) {
	s := newTestSimulator(1)
	assert.IsType(t, &ConsoleOutput{}, s.determineOutputDestination(), "no sinks configured")

	s.Config.OutputFile = t.TempDir()
	s.Config.OutputFormat = "json"
	assert.IsType(t, &JSONOutput{}, s.determineOutputDestination())

	s.Config.OutputFormat = "csv"
	assert.IsType(t, &CSVOutput{}, s.determineOutputDestination())

	s.Config.OutputFormat = "parquet"
	assert.IsType(t, &ParquetOutput{}, s.determineOutputDestination())
}