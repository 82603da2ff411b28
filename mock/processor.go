package mock

import "github.com/fwojciec/annowiki"

var _ annowiki.PageProcessor = (*PageProcessor)(nil)

// PageProcessor is a mock implementation of annowiki.PageProcessor.
type PageProcessor struct {
	ProcessPageFn func(lines []string) (annowiki.Record, error)
}

func (p *PageProcessor) ProcessPage(lines []string) (annowiki.Record, error) {
	return p.ProcessPageFn(lines)
}
