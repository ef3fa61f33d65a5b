package cli

var WaitBatchForTest = waitBatch
