// Package harakat scores Arabic diacritization engines against gold-standard
// diacritized text.
//
// # Quick Start
//
//	engine := harakat.DiacritizerFunc(func(ctx context.Context, text string) (string, error) {
//	    return myModel.Diacritize(text)
//	})
//
//	lines := []string{"كَتَبَ الوَلَدُ الدَّرْسَ"}
//	report, err := harakat.Evaluate(ctx, lines, engine, harakat.WithSampleSize(1000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("DER: %.2f%%\n", report.DERWithCase.Percent())
//
// # Metrics
//
// Every gold line is stripped of its marks, diacritized by the engine and
// aligned word by word against the gold line. Each base character of an
// aligned word is one position; a position is wrong when its (order
// independent) mark cluster differs from the gold cluster.
//
//   - DER: wrong positions / scored positions.
//   - WER: words with at least one wrong position / scored words.
//
// Both are reported with case endings (every position) and without them
// (the last position of each word is left out).
//
// # Engines
//
// Any Diacritizer can be scored. Package inference provides one backed by a
// character-level ONNX model:
//
//	d, err := inference.NewDiacritizer("model.onnx", "vocab.yaml", inference.WithPoolSize(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Close()
//
// The harakat-bench command can also drive an external program that reads
// one line on stdin and writes the diacritized line to stdout.
//
// # Engine Failures
//
// An engine error or panic excludes that line and is counted in
// Report.ProcessingErrors. The run always completes unless its context is
// canceled.
package harakat
