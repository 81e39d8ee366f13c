package service

import (
	"DMR_Link/config"
	"DMR_Link/model"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

var testFolders = &config.FolderConfig{
	Root:  "/docs",
	DMR:   "dmr",
	MSS:   "mss",
	PkgMI: "pkg-mi",
	MfgMI: "mfg-mi",
	QAS:   "qas",
	PSS:   "pss",
}

type dmrFixture struct {
	records *memRecords
	files   *memFiles
	tracker *memTracker
	svc     *DMRService
}

func newDMRFixture() *dmrFixture {
	fx := &dmrFixture{
		records: newMemRecords(),
		files:   newMemFiles(),
		tracker: &memTracker{},
	}
	links := newTestFactory(fx.files, fx.tracker, "5001")
	fx.svc = NewDMRService(fx.records, links, testFolders, 0, 0)
	fx.svc.genPassword = func() string { return "Pw0123456789abcd" }
	return fx
}

// seedP100 stores the package record and exactly one matching file per category.
func (fx *dmrFixture) seedP100() {
	fx.records.add(model.CollectionPackage, map[string]string{
		"part":            "P-100",
		"mss_msd_id":      "MSS-1",
		"qas":             "QAS-1",
		"mi_id":           "MI-1",
		"pss_id":          "PSS-1",
		"shipper_label":   "sl-9",
		"content_card":    "cc-9",
		"dispenser_label": "dl-9",
		"print_mat":       "pm-9",
		"dco_number":      "dco-42",
	})
	line := fx.files.addDir("/docs/dmr", "line A")
	fx.files.addFile(line, "P-100")
	fx.files.addFile("/docs/mss", "MSS-1.pdf")
	fx.files.addFile("/docs/pkg-mi", "MI-1.pdf")
	fam := fx.files.addDir("/docs/qas", "QAS-1 family")
	fx.files.addFile(fam, "QAS-1 rev C.pdf")
	fx.files.addFile("/docs/pss", "PSS-1.pdf")
}

func TestGetDMREndToEnd(t *testing.T) {
	fx := newDMRFixture()
	fx.seedP100()

	bundle, password, err := fx.svc.GetDMR(context.Background(), " p-100 ")
	if err != nil {
		t.Fatal(err)
	}
	if password != "Pw0123456789abcd" {
		t.Fatalf("password = %q", password)
	}

	distinct := map[string]bool{}
	for _, slot := range bundle.Slots() {
		if slot.HasLink() {
			distinct[slot.URL()] = true
		}
	}
	if len(distinct) != 5 {
		t.Fatalf("expect 5 distinct links, got %v", distinct)
	}
	for _, call := range fx.files.created {
		if call.Password != password {
			t.Fatalf("link %s created with password %q", call.Path, call.Password)
		}
	}
	if len(fx.tracker.links) != 5 {
		t.Fatalf("expect 5 tracked links, got %d", len(fx.tracker.links))
	}
	for _, l := range fx.tracker.links {
		if strings.Contains(l.Link, ":5001") {
			t.Fatalf("tracked link keeps internal port: %s", l.Link)
		}
	}

	wantOrder := []string{
		"/docs/dmr/line A/P-100",
		"/docs/pkg-mi/MI-1.pdf",
		"/docs/mss/MSS-1.pdf",
		"/docs/qas/QAS-1 family/QAS-1 rev C.pdf",
		"/docs/pss/PSS-1.pdf",
	}
	got := fx.files.createdPaths()
	if strings.Join(got, "|") != strings.Join(wantOrder, "|") {
		t.Fatalf("creation order = %v", got)
	}
}

func TestBundleSlots(t *testing.T) {
	fx := newDMRFixture()
	fx.seedP100()

	bundle, _, err := fx.svc.GetDMR(context.Background(), "P-100")
	if err != nil {
		t.Fatal(err)
	}
	dmrURL := bundle.DMR.URL()
	for _, slot := range []model.Slot{bundle.ShipperLabel, bundle.ContentLabel, bundle.DispenserLabel, bundle.PrintMaterial} {
		if slot.URL() != dmrURL {
			t.Fatalf("label slot %q does not reuse the DMR link", slot.Name)
		}
	}
	for _, slot := range []model.Slot{bundle.DCO, bundle.Ink, bundle.SpecialInstructions} {
		if slot.Link != nil {
			t.Fatalf("text slot %q carries a link", slot.Name)
		}
	}
	names := map[string]string{
		"mss":           "MSS MSS-1",
		"mi":            "MI MI-1",
		"qas":           "QAS QAS-1",
		"pss":           "PSS PSS-1",
		"dmr":           "DMR P-100",
		"shipper_label": "SL-9",
		"dco":           "DCO-42",
	}
	for _, slot := range bundle.Slots() {
		if want, ok := names[slot.Key]; ok && slot.Name != want {
			t.Fatalf("%s name = %q, want %q", slot.Key, slot.Name, want)
		}
	}

	var dmrExpiry, mssExpiry time.Time
	for _, call := range fx.files.created {
		switch call.Path {
		case "/docs/dmr/line A/P-100":
			dmrExpiry = call.ExpiresAt
		case "/docs/mss/MSS-1.pdf":
			mssExpiry = call.ExpiresAt
		}
	}
	if !dmrExpiry.Equal(sweepNow.Add(5*time.Minute)) || !mssExpiry.Equal(sweepNow.Add(30*time.Minute)) {
		t.Fatalf("expiries dmr=%v mss=%v", dmrExpiry, mssExpiry)
	}
}

func TestBundleMissingFileLeavesSlotEmpty(t *testing.T) {
	fx := newDMRFixture()
	fx.seedP100()
	fx.files.tree["/docs/mss"] = nil

	bundle, _, err := fx.svc.GetDMR(context.Background(), "P-100")
	if err != nil {
		t.Fatalf("missing file must not fail the bundle: %v", err)
	}
	if bundle.MSS.Link != nil {
		t.Fatalf("mss link = %q, want nil", bundle.MSS.URL())
	}
	if bundle.MSS.Name != "MSS MSS-1" {
		t.Fatalf("mss name = %q", bundle.MSS.Name)
	}
	for _, slot := range []model.Slot{bundle.MI, bundle.QAS, bundle.PSS, bundle.DMR} {
		if !slot.HasLink() {
			t.Fatalf("slot %q lost its link", slot.Name)
		}
	}
	if len(fx.tracker.links) != 4 {
		t.Fatalf("tracked = %d, want 4", len(fx.tracker.links))
	}
}

func TestBundleMIFallback(t *testing.T) {
	fx := newDMRFixture()
	fx.seedP100()
	fx.files.tree["/docs/pkg-mi"] = nil
	fx.files.addFile("/docs/mfg-mi", "MI-1 mfg.pdf")

	bundle, _, err := fx.svc.GetDMR(context.Background(), "P-100")
	if err != nil {
		t.Fatal(err)
	}
	if !bundle.MI.HasLink() {
		t.Fatal("expect MI found in the manufacturing folder")
	}
	found := false
	for _, p := range fx.files.createdPaths() {
		if p == "/docs/mfg-mi/MI-1 mfg.pdf" {
			found = true
		}
	}
	if !found {
		t.Fatalf("created = %v", fx.files.createdPaths())
	}
}

func TestBundleManufacturingSource(t *testing.T) {
	fx := newDMRFixture()
	fx.records.add(model.CollectionManufacturing, map[string]string{
		"part":      "M-5",
		"mssmsd_id": "MSS-5",
		"qas_id":    "QAS-5",
		"mi_id":     "MI-5",
	})
	fx.files.addFile("/docs/pkg-mi", "MI-5 pkg.pdf")
	fx.files.addFile("/docs/mfg-mi", "MI-5 mfg.pdf")
	fx.files.addFile("/docs/mss", "MSS-5.pdf")

	bundle, _, err := fx.svc.GetDMR(context.Background(), "M-5")
	if err != nil {
		t.Fatal(err)
	}
	if bundle.QAS.Name != "QAS-R QAS-5" {
		t.Fatalf("qas name = %q", bundle.QAS.Name)
	}
	if bundle.MSS.Name != "MSS MSS-5" || !bundle.MSS.HasLink() {
		t.Fatalf("mss slot = %+v", bundle.MSS)
	}
	paths := fx.files.createdPaths()
	for _, p := range paths {
		if p == "/docs/pkg-mi/MI-5 pkg.pdf" {
			t.Fatalf("manufacturing parts prefer the manufacturing MI folder, created %v", paths)
		}
	}
	if bundle.DMR.Link != nil || bundle.QAS.Link != nil || bundle.PSS.Link != nil {
		t.Fatal("slots without files must be nil")
	}
}

func TestBundleStoreFailureAborts(t *testing.T) {
	fx := newDMRFixture()
	fx.seedP100()
	fx.files.createErr = errors.New("nas unreachable")

	if _, _, err := fx.svc.GetDMR(context.Background(), "P-100"); err == nil {
		t.Fatal("expect remote failure")
	}
}

func TestFindPartOrder(t *testing.T) {
	fx := newDMRFixture()
	fx.records.add(model.CollectionComponent, map[string]string{"part": "X-1", "qas": "C"})
	fx.records.add(model.CollectionPackage, map[string]string{"part": "X-1", "qas": "P"})

	record, source, err := fx.svc.FindPart(context.Background(), "x-1")
	if err != nil {
		t.Fatal(err)
	}
	if source != model.CollectionPackage || record.QASID != "P" {
		t.Fatalf("got %s %+v", source, record)
	}
}

func TestFindPartNotFound(t *testing.T) {
	fx := newDMRFixture()
	for _, part := range []string{"", "  ", "NOPE"} {
		if _, _, err := fx.svc.GetDMR(context.Background(), part); !errors.Is(err, ErrPartNotFound) {
			t.Fatalf("%q: expect ErrPartNotFound, got %v", part, err)
		}
	}
	if len(fx.files.lists) != 0 {
		t.Fatal("unknown parts must not reach the file store")
	}
}

func TestQASLabel(t *testing.T) {
	cases := map[model.Collection]string{
		model.CollectionPackage:       "QAS",
		model.CollectionComponent:     "QAS",
		model.CollectionManufacturing: "QAS-R",
	}
	for c, want := range cases {
		if got := QASLabel(c); got != want {
			t.Fatalf("QASLabel(%s) = %q, want %q", c, got, want)
		}
	}
}
