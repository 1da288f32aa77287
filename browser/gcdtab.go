package browser

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/locatork/document/static"
	"gitlab.com/locatork/locatork"
)

// Tab is a chromium browser tab answering selector queries against its live DOM.
// Node IDs are never kept between queries: every Query fetches the current document.
type Tab struct {
	g                 *gcd.Gcd
	t                 *gcd.ChromeTarget
	id                int64
	navigationCh      chan struct{} // signaled on Page.loadEventFired
	crashedCh         chan string   // the chrome tab crashed with a reason
	exitCh            chan struct{} // for when we close the tab
	shutdown          int32
	navigationTimeout time.Duration
}

// NewTab opens a new target in the browser
func NewTab(ctx context.Context, gcdBrowser *gcd.Gcd) (*Tab, error) {
	target, err := gcdBrowser.NewTab()
	if err != nil {
		return nil, &InvalidTabErr{Message: err.Error()}
	}
	t := &Tab{
		g:                 gcdBrowser,
		t:                 target,
		id:                locatork.GetSessionID(),
		navigationCh:      make(chan struct{}, 1),
		crashedCh:         make(chan string, 1),
		exitCh:            make(chan struct{}),
		navigationTimeout: 30 * time.Second,
	}
	if err := t.subscribeBrowserEvents(ctx); err != nil {
		gcdBrowser.CloseTab(target)
		return nil, err
	}
	return t, nil
}

// ID of this tab
func (t *Tab) ID() int64 {
	return t.id
}

// SetNavigationTimeout to wait for the load event before giving up, default is 30 seconds
func (t *Tab) SetNavigationTimeout(timeout time.Duration) {
	t.navigationTimeout = timeout
}

// Close the tab
func (t *Tab) Close() error {
	if !atomic.CompareAndSwapInt32(&t.shutdown, 0, 1) {
		return nil
	}
	close(t.exitCh)
	return t.g.CloseTab(t.t)
}

func (t *Tab) closing() bool {
	return atomic.LoadInt32(&t.shutdown) == 1
}

// Navigate to url and wait for the load event
func (t *Tab) Navigate(ctx context.Context, url string) error {
	if t.closing() {
		return ErrTabClosing
	}
	// drop a load event left over from about:blank
	select {
	case <-t.navigationCh:
	default:
	}

	navParams := &gcdapi.PageNavigateParams{Url: url, TransitionType: "typed"}
	_, _, errText, err := t.t.Page.NavigateWithParams(navParams)
	if err != nil {
		return errors.Wrap(err, "navigate "+url)
	}
	if errText != "" {
		return errors.Wrap(ErrNavigating, errText)
	}

	timer := time.NewTimer(t.navigationTimeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		return ErrNavigationTimedOut
	case <-ctx.Done():
		return ctx.Err()
	case <-t.exitCh:
		return ErrTabClosing
	case reason := <-t.crashedCh:
		return errors.Wrap(ErrTabCrashed, reason)
	case <-t.navigationCh:
	}
	log.Ctx(ctx).Debug().Str("url", url).Int64("tab", t.id).Msg("navigation complete")
	return nil
}

// URL of the current page
func (t *Tab) URL() (string, error) {
	_, entries, err := t.t.Page.GetNavigationHistory()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}
	return entries[len(entries)-1].Url, nil
}

func (t *Tab) documentID() (int, error) {
	if t.closing() {
		return 0, ErrTabClosing
	}
	doc, err := t.t.DOM.GetDocument(1, false)
	if err != nil {
		return 0, errors.Wrap(err, "get document")
	}
	return doc.NodeId, nil
}

// Query the first node matching selector in the current document
func (t *Tab) Query(ctx context.Context, selector string) (locatork.Node, bool, error) {
	if err := locatork.ValidateSelector(selector); err != nil {
		return nil, false, err
	}
	docID, err := t.documentID()
	if err != nil {
		return nil, false, err
	}
	nodeID, err := t.t.DOM.QuerySelector(docID, selector)
	if err != nil {
		return nil, false, errors.Wrap(err, "query "+selector)
	}
	if nodeID == 0 {
		return nil, false, nil
	}
	return &Node{tab: t, nodeID: nodeID}, true, nil
}

// QueryAll nodes matching selector in document order
func (t *Tab) QueryAll(ctx context.Context, selector string) ([]locatork.Node, error) {
	if err := locatork.ValidateSelector(selector); err != nil {
		return nil, err
	}
	docID, err := t.documentID()
	if err != nil {
		return nil, err
	}
	nodeIDs, err := t.t.DOM.QuerySelectorAll(docID, selector)
	if err != nil {
		return nil, errors.Wrap(err, "query all "+selector)
	}
	nodes := make([]locatork.Node, len(nodeIDs))
	for i, nodeID := range nodeIDs {
		nodes[i] = &Node{tab: t, nodeID: nodeID}
	}
	log.Ctx(ctx).Debug().Str("selector", selector).Int("nodes", len(nodes)).Msg("query all")
	return nodes, nil
}

// PageSource of the current document
func (t *Tab) PageSource() (string, error) {
	docID, err := t.documentID()
	if err != nil {
		return "", err
	}
	return t.t.DOM.GetOuterHTMLWithParams(&gcdapi.DOMGetOuterHTMLParams{NodeId: docID})
}

func (t *Tab) subscribeBrowserEvents(ctx context.Context) error {
	if _, err := t.t.DOM.Enable(); err != nil {
		return errors.Wrap(err, "enable DOM")
	}
	if _, err := t.t.Page.Enable(); err != nil {
		return errors.Wrap(err, "enable Page")
	}
	if _, err := t.t.Inspector.Enable(); err != nil {
		return errors.Wrap(err, "enable Inspector")
	}

	t.t.Subscribe("Inspector.targetCrashed", func(target *gcd.ChromeTarget, payload []byte) {
		log.Ctx(ctx).Warn().Msgf("tab crashed: %s", string(payload))
		t.crashed("crashed")
	})

	t.t.Subscribe("Inspector.detached", func(target *gcd.ChromeTarget, payload []byte) {
		header := &gcdapi.InspectorDetachedEvent{}
		reason := "detached"
		if err := json.Unmarshal(payload, header); err == nil {
			reason = header.Params.Reason
		}
		t.crashed(reason)
	})

	t.t.Subscribe("Page.loadEventFired", func(target *gcd.ChromeTarget, payload []byte) {
		select {
		case t.navigationCh <- struct{}{}:
		default:
		}
	})
	return nil
}

func (t *Tab) crashed(reason string) {
	select {
	case t.crashedCh <- reason:
	case <-t.exitCh:
	default:
	}
}

// Node is a DOM node of a tab, identified by the node ID of the query that found it.
type Node struct {
	tab    *Tab
	nodeID int
}

// NodeID chrome assigned to the node
func (n *Node) NodeID() int {
	return n.nodeID
}

// Text content of the node, read from its outer HTML
func (n *Node) Text() (string, error) {
	outer, err := n.tab.t.DOM.GetOuterHTMLWithParams(&gcdapi.DOMGetOuterHTMLParams{NodeId: n.nodeID})
	if err != nil {
		return "", &NodeGoneErr{NodeID: n.nodeID, Err: err}
	}
	node, err := static.FragmentNode(outer)
	if err != nil {
		return "", err
	}
	return node.Text()
}

// Attribute of the node and whether it is present
func (n *Node) Attribute(name string) (string, bool, error) {
	attrs, err := n.tab.t.DOM.GetAttributes(n.nodeID)
	if err != nil {
		return "", false, &NodeGoneErr{NodeID: n.nodeID, Err: err}
	}
	val, ok := GetAttribute(attrs, name)
	return val, ok, nil
}
