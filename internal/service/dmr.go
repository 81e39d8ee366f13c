package service

import (
	"DMR_Link/config"
	"DMR_Link/internal/repo"
	"DMR_Link/model"
	"DMR_Link/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// ErrPartNotFound is returned when no collection holds the requested part.
var ErrPartNotFound = errors.New("part not found")

// DMRService assembles Device Master Record bundles.
type DMRService struct {
	records     repo.RecordStore
	links       *LinkFactory
	folders     *config.FolderConfig
	linkTTL     time.Duration
	dmrTTL      time.Duration
	genPassword func() string
}

// NewDMRService builds a DMR service. Zero TTLs fall back to 30 minutes for
// document links and 5 minutes for the DMR root link.
func NewDMRService(records repo.RecordStore, links *LinkFactory, folders *config.FolderConfig, linkTTL, dmrTTL time.Duration) *DMRService {
	if linkTTL <= 0 {
		linkTTL = DefaultLinkTTL
	}
	if dmrTTL <= 0 {
		dmrTTL = 5 * time.Minute
	}
	return &DMRService{
		records:     records,
		links:       links,
		folders:     folders,
		linkTTL:     linkTTL,
		dmrTTL:      dmrTTL,
		genPassword: utils.GenPassword,
	}
}

// FindPart looks the part up in the package, manufacturing and component
// collections in that order and returns the first hit with its collection.
func (s *DMRService) FindPart(ctx context.Context, part string) (*model.PartRecord, model.Collection, error) {
	part = utils.NormalizePart(part)
	if part == "" {
		return nil, "", ErrPartNotFound
	}
	for _, c := range model.Collections {
		record, err := s.records.FindByPart(ctx, c, part)
		if err != nil {
			return nil, "", err
		}
		if record != nil {
			return record, c, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrPartNotFound, part)
}

// GetDMR finds a part and builds its bundle.
func (s *DMRService) GetDMR(ctx context.Context, part string) (*model.DMRBundle, string, error) {
	record, source, err := s.FindPart(ctx, part)
	if err != nil {
		return nil, "", err
	}
	return s.BuildBundle(ctx, *record, source, utils.NormalizePart(part))
}

// BuildBundle creates every link of the part's DMR under one fresh password.
// The DMR root link is shared by the label slots and the dmr slot, so those
// slots expire together. A slot whose file is missing has a nil link; a file
// store failure aborts the bundle.
func (s *DMRService) BuildBundle(ctx context.Context, record model.PartRecord, source model.Collection, part string) (*model.DMRBundle, string, error) {
	start := time.Now()
	defer func() { bundleDuration.Observe(time.Since(start).Seconds()) }()

	password := s.genPassword()

	mssID := utils.NormalizeField(record.MSSID)
	qasID := utils.NormalizeField(record.QASID)
	miID := utils.NormalizeField(record.MIID)
	pssID := utils.NormalizeField(record.PSSID)

	dmrLink, err := s.links.CreateLink(ctx, LinkRequest{
		Category:   "dmr",
		SearchTerm: part,
		Password:   password,
		Folder:     s.folders.Path(s.folders.DMR),
		TTL:        s.dmrTTL,
		Strategy:   MatchExactNested,
	})
	if err != nil {
		return nil, "", fmt.Errorf("dmr link: %w", err)
	}

	miLink, err := s.miLink(ctx, miID, password, source)
	if err != nil {
		return nil, "", fmt.Errorf("mi link: %w", err)
	}

	mssLink, err := s.links.CreateLink(ctx, LinkRequest{
		Category:   "mss",
		SearchTerm: mssID,
		Password:   password,
		Folder:     s.folders.Path(s.folders.MSS),
		TTL:        s.linkTTL,
		Strategy:   MatchPattern,
	})
	if err != nil {
		return nil, "", fmt.Errorf("mss link: %w", err)
	}

	qasLink, err := s.links.CreateLink(ctx, LinkRequest{
		Category:   "qas",
		SearchTerm: qasID,
		Password:   password,
		Folder:     s.folders.Path(s.folders.QAS),
		TTL:        s.linkTTL,
		Strategy:   MatchPatternNested,
	})
	if err != nil {
		return nil, "", fmt.Errorf("qas link: %w", err)
	}

	pssLink, err := s.links.CreateLink(ctx, LinkRequest{
		Category:   "pss",
		SearchTerm: pssID,
		Password:   password,
		Folder:     s.folders.Path(s.folders.PSS),
		TTL:        s.linkTTL,
		Strategy:   MatchPattern,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pss link: %w", err)
	}

	bundle := &model.DMRBundle{
		MSS:                 model.NewSlot("MSS "+mssID, mssLink),
		MI:                  model.NewSlot("MI "+miID, miLink),
		QAS:                 model.NewSlot(QASLabel(source)+" "+qasID, qasLink),
		PSS:                 model.NewSlot("PSS "+pssID, pssLink),
		ShipperLabel:        model.NewSlot(strings.ToUpper(record.ShipperLabel), dmrLink),
		ContentLabel:        model.NewSlot(strings.ToUpper(record.ContentLabel), dmrLink),
		DispenserLabel:      model.NewSlot(strings.ToUpper(record.DispenserLabel), dmrLink),
		PrintMaterial:       model.NewSlot(strings.ToUpper(record.PrintMaterial), dmrLink),
		DMR:                 model.NewSlot("DMR "+strings.ToUpper(part), dmrLink),
		DCO:                 model.NewSlot(strings.ToUpper(record.DCONumber), ""),
		Ink:                 model.NewSlot(strings.ToUpper(record.InkPartNumber), ""),
		SpecialInstructions: model.NewSlot(strings.ToUpper(record.SpecialInstructions), ""),
	}
	log.Printf("[BuildBundle] part %s (%s) bundled in %s", part, source, time.Since(start).Round(time.Millisecond))
	return bundle, password, nil
}

// miLink tries the MI folder matching the source collection first and falls
// back to the other one.
func (s *DMRService) miLink(ctx context.Context, miID, password string, source model.Collection) (string, error) {
	folders := []string{s.folders.PkgMI, s.folders.MfgMI}
	if source == model.CollectionManufacturing {
		folders = []string{s.folders.MfgMI, s.folders.PkgMI}
	}
	for _, folder := range folders {
		link, err := s.links.CreateLink(ctx, LinkRequest{
			Category:   "mi",
			SearchTerm: miID,
			Password:   password,
			Folder:     s.folders.Path(folder),
			TTL:        s.linkTTL,
			Strategy:   MatchPattern,
		})
		if err != nil || link != "" {
			return link, err
		}
	}
	return "", nil
}

// QASLabel names the quality assurance slot after the collection that owns the
// bundled record. It is independent of the classification computed by
// Resolver.Resolve, and the two can disagree for the same part.
func QASLabel(source model.Collection) string {
	if source == model.CollectionManufacturing {
		return string(model.ClassificationQASR)
	}
	return string(model.ClassificationQAS)
}
