// Package mteval scores machine translation output with BLEU, chrF, TER and
// METEOR in both directions of a Korean/English translator and assembles the
// results into a report.
//
// # Quick Start
//
//	f, err := corpus.LoadFixture("testdata/corpus.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pool, err := translate.NewPool(translate.Shared(myTranslator), 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	ev := mteval.New()
//	koEn, enKo, err := ev.Translate(ctx, f, pool)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rep, err := ev.Evaluate(ctx, koEn, enKo)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("ko-en BLEU: %.2f\n", rep.KoToEn.BLEU)
//
// # Tokenization
//
// BLEU and TER compare whitespace-delimited words in both directions. METEOR
// compares words for English output and characters for Korean output. chrF
// works on raw characters. See the tokenizer package.
//
// # Thread Safety
//
// Evaluator is safe for concurrent use. Scoring fans out over directions and
// metrics, bounded by WithConcurrency.
package mteval
