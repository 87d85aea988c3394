package pricing

import "testing"

func TestFlatMonthlyCostECR(t *testing.T) {
	// 1 GB = 1073741824 bytes, at $0.10/GB = $0.10
	cost := FlatMonthlyCost("ecr", "us-east-1", 1073741824)
	if !almostEqual(cost, 0.10) {
		t.Errorf("1GB ECR cost = %f, want 0.10", cost)
	}
}

func TestFlatMonthlyCostLargeRepository(t *testing.T) {
	cost := FlatMonthlyCost("ecr", "eu-west-1", 5*1073741824)
	if !almostEqual(cost, 0.50) {
		t.Errorf("5GB ECR cost = %f, want 0.50", cost)
	}
}

func TestFlatMonthlyCostAR(t *testing.T) {
	cost := FlatMonthlyCost("artifactregistry", "us-central1", 1073741824)
	if !almostEqual(cost, 0.10) {
		t.Errorf("1GB AR cost = %f, want 0.10", cost)
	}
}

func TestFlatMonthlyCostZeroBytes(t *testing.T) {
	if cost := FlatMonthlyCost("ecr", "us-east-1", 0); cost != 0 {
		t.Errorf("0 bytes cost = %f, want 0", cost)
	}
}

func TestFlatMonthlyCostSmallRepository(t *testing.T) {
	// 100 MB = 104857600 bytes
	cost := FlatMonthlyCost("ecr", "us-east-1", 104857600)
	expected := 0.10 * (100.0 / 1024.0)
	if !almostEqual(cost, expected) {
		t.Errorf("100MB ECR cost = %f, want %f", cost, expected)
	}
}

func TestFlatRate(t *testing.T) {
	tests := []struct {
		provider string
		region   string
		want     float64
	}{
		{"ecr", "us-east-1", 0.10},
		{"ecr", "default", 0.10},
		{"artifactregistry", "us-central1", 0.10},
		{"artifactregistry", "unknown-region", 0.10},
		{"unknown", "unknown", 0.10},
	}
	for _, tt := range tests {
		got := FlatRate(tt.provider, tt.region)
		if !almostEqual(got, tt.want) {
			t.Errorf("FlatRate(%q, %q) = %f, want %f", tt.provider, tt.region, got, tt.want)
		}
	}
}
