package redis

import "testing"

func TestOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		wantAddr string
		wantDB   int
		wantPool int
		wantErr  bool
	}{
		{name: "plain", cfg: Config{URL: "redis://localhost:6379/0"}, wantAddr: "localhost:6379"},
		{name: "db and pool", cfg: Config{URL: "redis://cache:6380/3", PoolSize: 7}, wantAddr: "cache:6380", wantDB: 3, wantPool: 7},
		{name: "bad scheme", cfg: Config{URL: "http://localhost"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opt, err := Options(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Options() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if opt.Addr != tt.wantAddr || opt.DB != tt.wantDB {
				t.Errorf("Options() addr=%q db=%d, want addr=%q db=%d", opt.Addr, opt.DB, tt.wantAddr, tt.wantDB)
			}
			if tt.wantPool > 0 && opt.PoolSize != tt.wantPool {
				t.Errorf("PoolSize = %d, want %d", opt.PoolSize, tt.wantPool)
			}
		})
	}
}
