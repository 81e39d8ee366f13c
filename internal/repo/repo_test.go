package repo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestHandleExpiredKey(t *testing.T) {
	var got []string
	record := func(id string) { got = append(got, id) }

	handleExpiredKey(ExpiryKeyPrefix+"AbC123", record)
	handleExpiredKey("lock:link-sweep", record)
	handleExpiredKey("sharelink", record)

	if len(got) != 1 || got[0] != "AbC123" {
		t.Fatalf("expired ids = %v, want [AbC123]", got)
	}
}

func TestStringField(t *testing.T) {
	field := stringField(bson.M{
		"part":   "P-1",
		"qas":    nil,
		"mi_id":  int32(4021),
		"pss_id": 12.5,
	})
	cases := map[string]string{
		"part":       "P-1",
		"qas":        "",
		"mi_id":      "4021",
		"pss_id":     "12.5",
		"mss_msd_id": "",
	}
	for name, want := range cases {
		if got := field(name); got != want {
			t.Fatalf("field(%q) = %q, want %q", name, got, want)
		}
	}
}
