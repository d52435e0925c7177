// Package report drives a full report run: search, enrichment, question generation,
// narrative drafting, block conversion and upload.
package report

import (
	"errors"
	"fmt"
)

// ErrUnknownTopic is returned for topic names with no query catalog.
var ErrUnknownTopic = errors.New("unsupported topic")

// Query is one report section and the search that feeds it.
type Query struct {
	SectionTitle string
	Query        string
}

// Topic is a named query catalog with its report title.
type Topic struct {
	Name    string
	Title   string
	Queries []Query
}

var topics = map[string]Topic{
	"general": {
		Name:  "general",
		Title: "International AI Policy and Investment Overview",
		Queries: []Query{
			{"AI News", "artificial intelligence policy OR AI regulation OR AI investment OR national AI strategy OR AI governance from the last few weeks"},
			{"USA Policy", `site:whitehouse.gov OR site:nist.gov "AI policy" OR "executive order" OR "national strategy for AI"`},
			{"European Union", `site:ec.europa.eu "AI Act" OR "artificial intelligence regulation"`},
			{"France Policy", `site:economie.gouv.fr "intelligence artificielle" OR "stratégie nationale IA"`},
			{"Spain Policy", `site:lamoncloa.gob.es OR site:mineco.gob.es "inteligencia artificial"`},
			{"AI Investment Global", `site:reuters.com OR site:techcrunch.com OR site:forbes.com "AI investment" OR "AI venture funding"`},
			{"China Policy", `site:gov.cn OR site:scmp.com "AI policy" OR "AI development plan"`},
			{"UN/UNESCO Reports", `site:unesco.org OR site:un.org "AI ethics" OR "artificial intelligence" report`},
		},
	},
	"research": {
		Name:  "research",
		Title: "Emerging Trends in AI Research and Algorithms",
		Queries: []Query{
			{"New AI Papers", `site:arxiv.org OR site:nature.com OR site:paperswithcode.com "new algorithm" OR "deep learning" OR "transformer" OR "quantum AI"`},
			{"ML Research Trends", `site:deepmind.com OR site:openai.com "research" OR "technical blog" OR "whitepaper"`},
			{"NeurIPS/ICML Highlights", `site:neurips.cc OR site:icml.cc "accepted papers" OR "conference highlights"`},
			{"Breakthroughs in Generative Models", `site:huggingface.co OR site:openai.com OR site:meta.ai "generative models" OR "LLM architecture"`},
			{"New Algorithms and Papers", `site:arxiv.org OR site:openreview.net "artificial intelligence" OR "deep learning" OR "neural network" sorted by date`},
			{"Academic Conferences", `site:nips.cc OR site:icml.cc OR site:aaai.org OR site:cvpr.thecvf.com OR site:sigir.org "accepted papers"`},
			{"Benchmarking Trends", `site:paperswithcode.com OR site:mlcommons.org "state-of-the-art" OR "new benchmark"`},
			{"Transformer Models", `site:arxiv.org "transformer architecture" OR "attention mechanism" OR "scaling laws"`},
			{"Reinforcement Learning", `site:arxiv.org OR site:deepmind.com "reinforcement learning" OR "RLHF" OR "offline RL"`},
			{"ML Ethics & Safety Research", `site:arxiv.org OR site:openai.com OR site:alignmentforum.org "AI alignment" OR "AI safety research"`},
			{"Neurosymbolic AI", `site:arxiv.org OR site:mit.edu OR site:stanford.edu "neurosymbolic AI" OR "hybrid learning"`},
			{"Computational Efficiency", `site:arxiv.org OR site:meta.com "efficient inference" OR "model compression" OR "quantization"`},
			{"LLM Architectures", `site:arxiv.org OR site:huggingface.co "Mixture of Experts" OR "LLM architecture" OR "model parallelism"`},
			{"General Academic Trends", `artificial intelligence AND ("research trend" OR "latest paper" OR "new method") from the last month`},
		},
	},
}

// LookupTopic returns the catalog for name.
func LookupTopic(name string) (Topic, error) {
	t, ok := topics[name]
	if !ok {
		return Topic{}, fmt.Errorf("%w %q", ErrUnknownTopic, name)
	}
	return t, nil
}

// TopicNames lists the supported topics.
func TopicNames() []string {
	return []string{"general", "research"}
}
