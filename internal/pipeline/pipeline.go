// Package pipeline drives a full load: read the downloaded SIGNOR tables,
// build one network per pathway, run the update passes, style the result
// and push it to NDEx. Pathways are processed strictly in sequence; a
// failed pathway is logged and skipped so the rest of the run survives.
package pipeline

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/ndexcontent/signorloader/internal/genesymbol"
	"github.com/ndexcontent/signorloader/internal/layout"
	"github.com/ndexcontent/signorloader/internal/loadplan"
	"github.com/ndexcontent/signorloader/internal/ndex"
	"github.com/ndexcontent/signorloader/internal/network"
	"github.com/ndexcontent/signorloader/internal/report"
	"github.com/ndexcontent/signorloader/internal/signor"
	"github.com/ndexcontent/signorloader/internal/updater"
)

// FullNetworkPrefix starts the names of the three full species networks.
// Names carrying it switch the loader to the headerless table schema and
// the load plan without location columns.
const FullNetworkPrefix = "Signor Complete"

// fullOrganisms fixes the processing order of the full species networks.
var fullOrganisms = []string{"Human", "Mouse", "Rat"}

// typeAttr is the node attribute tallied into the per-network report.
const typeAttr = "type"

//go:embed style.cx
var defaultStyle []byte

// NDExClient is the slice of the NDEx API the pipeline needs.
type NDExClient interface {
	NetworkSummaries(ctx context.Context) ([]ndex.NetworkSummary, error)
	NetworkAsCX(ctx context.Context, id uuid.UUID) ([]byte, error)
	CreateNetwork(ctx context.Context, cx []byte, visibility string) (uuid.UUID, error)
	UpdateNetwork(ctx context.Context, id uuid.UUID, cx []byte) error
}

// Options tune one load run.
type Options struct {
	// LoadPlanPath selects an alternate load plan; empty uses the bundled one.
	LoadPlanPath string

	// StylePath is a CX file or the UUID of an NDEx network whose visual
	// style is copied onto every loaded network; empty uses the bundled style.
	StylePath string

	// Visibility of newly created networks, PUBLIC or PRIVATE.
	Visibility string

	// IconURL is written to the __iconurl attribute of full species networks.
	IconURL string

	// EdgeCollapse merges redundant edges before layout.
	EdgeCollapse bool

	// PathwayGlob restricts the run to pathways whose id or name matches
	// the glob. Empty processes everything.
	PathwayGlob string
}

// Loader runs the load pipeline over one downloaded data directory.
type Loader struct {
	downloader *signor.Downloader
	ndex       NDExClient
	searcher   genesymbol.Searcher
	opts       Options

	plan     *loadplan.LoadPlan
	fullPlan *loadplan.LoadPlan
	template *network.Network

	// upper-cased network name -> NDEx UUID, decides create vs update
	summaries map[string]uuid.UUID

	updaters []updater.Updater
}

// New creates a loader. The downloader must point at a populated data
// directory by the time Run is called.
func New(downloader *signor.Downloader, client NDExClient, searcher genesymbol.Searcher, opts Options) *Loader {
	if opts.Visibility == "" {
		opts.Visibility = "PUBLIC"
	}
	if opts.IconURL == "" {
		opts.IconURL = DefaultIconURL
	}
	return &Loader{
		downloader: downloader,
		ndex:       client,
		searcher:   searcher,
		opts:       opts,
	}
}

// Run loads every selected pathway and the full species networks, returning
// one report per successfully uploaded network.
func (l *Loader) Run(ctx context.Context) ([]*report.Report, error) {
	if l.opts.PathwayGlob != "" && !doublestar.ValidatePattern(l.opts.PathwayGlob) {
		return nil, fmt.Errorf("invalid pathway pattern %q", l.opts.PathwayGlob)
	}

	if err := l.planStage(); err != nil {
		return nil, err
	}
	if err := l.styleStage(ctx); err != nil {
		return nil, err
	}
	if err := l.summariesStage(ctx); err != nil {
		return nil, err
	}
	if err := l.updaterStage(); err != nil {
		return nil, err
	}
	return l.processStage(ctx)
}

// planStage parses the load plan and derives the full species variant,
// which lacks the location columns.
func (l *Loader) planStage() error {
	var err error
	if l.opts.LoadPlanPath == "" {
		l.plan, err = loadplan.Default()
	} else {
		l.plan, err = loadplan.FromFile(l.opts.LoadPlanPath)
	}
	if err != nil {
		return err
	}
	l.fullPlan = l.plan.WithoutColumns("REGULATOR_LOCATION", "TARGET_LOCATION")
	return nil
}

// styleStage loads the style template from the bundled CX, a file, or an
// NDEx network UUID.
func (l *Loader) styleStage(ctx context.Context) error {
	data := defaultStyle
	if l.opts.StylePath != "" {
		if _, err := os.Stat(l.opts.StylePath); err == nil {
			data, err = os.ReadFile(l.opts.StylePath)
			if err != nil {
				return fmt.Errorf("failed to read style template: %w", err)
			}
		} else {
			id, err := uuid.Parse(l.opts.StylePath)
			if err != nil {
				return fmt.Errorf("style %q is neither a file nor a network UUID", l.opts.StylePath)
			}
			data, err = l.ndex.NetworkAsCX(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch style network %s: %w", id, err)
			}
		}
	}

	template, err := network.FromCX(data)
	if err != nil {
		return fmt.Errorf("failed to parse style template: %w", err)
	}
	l.template = template
	return nil
}

// summariesStage maps the upper-cased names of the user's existing networks
// to their UUIDs.
func (l *Loader) summariesStage(ctx context.Context) error {
	summaries, err := l.ndex.NetworkSummaries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load network summaries: %w", err)
	}

	l.summaries = make(map[string]uuid.UUID, len(summaries))
	for _, s := range summaries {
		if s.Name == "" {
			continue
		}
		l.summaries[strings.ToUpper(s.Name)] = s.ExternalID
	}
	slog.Info("Loaded network summaries", "count", len(l.summaries))
	return nil
}

// updaterStage builds the update pass list. The entity maps steering the
// member pass come from the downloaded protein family and complex exports.
func (l *Loader) updaterStage() error {
	proteinFamilies, err := l.downloader.ProteinFamilyMap()
	if err != nil {
		return err
	}
	complexes, err := l.downloader.ComplexesMap()
	if err != nil {
		return err
	}

	l.updaters = []updater.Updater{
		updater.NewDirectEdgeUpdater(),
		updater.NewRepresentsPrefixer(),
		updater.NewLocationDefaulter(),
		updater.NewMemberUpdater(proteinFamilies, complexes, l.searcher),
		updater.NewCitationCleaner(),
	}
	if l.opts.EdgeCollapse {
		l.updaters = append(l.updaters, updater.NewEdgeCollapser())
	}
	// Layout runs last, once the location attributes are final.
	l.updaters = append(l.updaters, layout.NewSpringLayoutUpdater())
	return nil
}

// processStage walks the pathway listing and then the full species
// networks. Failures are logged per network and do not stop the run.
func (l *Loader) processStage(ctx context.Context) ([]*report.Report, error) {
	pathways, err := l.downloader.Pathways()
	if err != nil {
		return nil, err
	}

	var reports []*report.Report
	for _, p := range pathways {
		if !l.matches(p.ID, p.Name) {
			continue
		}
		slog.Info("Processing pathway", "id", p.ID, "name", p.Name)
		rep, err := l.processPathway(ctx, p.ID, p.Name)
		if err != nil {
			slog.Error("Unable to load pathway", "id", p.ID, "name", p.Name, "error", err)
			continue
		}
		reports = append(reports, rep)
	}

	for _, organism := range fullOrganisms {
		id := "full_" + organism
		name := FullNetworkPrefix + " - " + organism
		if !l.matches(id, name) {
			continue
		}
		slog.Info("Processing full species network", "name", name)
		rep, err := l.processPathway(ctx, id, name)
		if err != nil {
			slog.Error("Unable to load full species network", "name", name, "error", err)
			continue
		}
		reports = append(reports, rep)
	}

	return reports, nil
}

// matches applies the pathway glob to an id and a name.
func (l *Loader) matches(id, name string) bool {
	if l.opts.PathwayGlob == "" {
		return true
	}
	if ok, _ := doublestar.Match(l.opts.PathwayGlob, id); ok {
		return true
	}
	ok, _ := doublestar.Match(l.opts.PathwayGlob, name)
	return ok
}

// processPathway builds, decorates and uploads one network.
func (l *Loader) processPathway(ctx context.Context, pathwayID, pathwayName string) (*report.Report, error) {
	isFull := strings.HasPrefix(pathwayName, FullNetworkPrefix)

	var t *loadplan.Table
	var err error
	plan := l.plan
	if isFull {
		plan = l.fullPlan
		t, err = loadplan.ReadHeaderlessFile(l.downloader.PathwayPath(pathwayID), signor.FullFileColumns)
		if err == nil {
			if dropped := t.RequireValues("ENTITYA", "ENTITYB", "IDA", "IDB"); dropped > 0 {
				slog.Info("Dropped rows missing entities or ids",
					"pathway", pathwayID, "rows", dropped)
			}
		}
	} else {
		t, err = loadplan.ReadFile(l.downloader.PathwayPath(pathwayID))
	}
	if err != nil {
		return nil, err
	}

	net, err := loadplan.Convert(t, plan)
	if err != nil {
		return nil, err
	}

	if err := l.writeNetworkAttributes(net, pathwayID, pathwayName, isFull); err != nil {
		return nil, err
	}

	rep := report.New(pathwayName)
	for _, u := range l.updaters {
		rep.AddIssues(u.Description(), u.Update(ctx, net))
	}

	net.ApplyStyleFrom(l.template)

	for _, node := range net.Nodes() {
		if attr, ok := net.NodeAttribute(node.ID, typeAttr); ok {
			nodeType, _ := attr.Value.(string)
			rep.AddNodeType(nodeType)
		}
	}

	if err := l.uploadNetwork(ctx, net); err != nil {
		return nil, err
	}
	return rep, nil
}

// uploadNetwork creates the network on NDEx, or updates it in place when
// the user already owns one with the same name.
func (l *Loader) uploadNetwork(ctx context.Context, net *network.Network) error {
	cx, err := net.ToCX()
	if err != nil {
		return err
	}

	if id, ok := l.summaries[strings.ToUpper(net.Name())]; ok {
		if err := l.ndex.UpdateNetwork(ctx, id, cx); err != nil {
			return err
		}
		slog.Info("Updated network", "name", net.Name(), "uuid", id)
		return nil
	}

	id, err := l.ndex.CreateNetwork(ctx, cx, l.opts.Visibility)
	if err != nil {
		return err
	}
	slog.Info("Created network", "name", net.Name(), "uuid", id,
		"visibility", l.opts.Visibility)
	return nil
}
